package echo360

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// playerCall starts the script statement that boots the player with the lesson's data.
const playerCall = `Echo["echoPlayerV2FullApp"]`

// ErrNoPlayerData is returned for pages that do not boot the player,
// typically a login page served to an expired session.
var ErrNoPlayerData = errors.New("page has no player data")

// ExtractPlayerData finds the player boot statement in a classroom page and
// returns the JSON document passed to it as a string literal.
func ExtractPlayerData(page string) (json.RawMessage, error) {
	statement, ok := findPlayerCall(page)
	if !ok {
		return nil, ErrNoPlayerData
	}

	literal, err := callArgument(statement)
	if err != nil {
		return nil, err
	}

	decoded, err := unescapeJS(literal)
	if err != nil {
		return nil, fmt.Errorf("unescape player data: %w", err)
	}

	if !json.Valid([]byte(decoded)) {
		return nil, errors.New("player data is not valid JSON")
	}

	return json.RawMessage(decoded), nil
}

// findPlayerCall looks for the statement in the page's scripts, then in the
// raw page for documents the HTML parser cannot make sense of.
func findPlayerCall(page string) (string, bool) {
	var statement string

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page)); err == nil {
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if line, ok := scanLines(s.Text()); ok {
				statement = line
				return false
			}
			return true
		})
	}

	if statement != "" {
		return statement, true
	}

	return scanLines(page)
}

func scanLines(text string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, playerCall) {
			return line, true
		}
	}

	return "", false
}

// callArgument returns the body of the string literal in `Echo[...]("...");`.
func callArgument(statement string) (string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(statement, playerCall))

	if !strings.HasPrefix(rest, `("`) {
		return "", errors.New("player call has no string argument")
	}

	end := strings.LastIndex(rest, `")`)
	if end < 2 {
		return "", errors.New("player call argument is not terminated")
	}

	return rest[2:end], nil
}

// unescapeJS decodes the escape sequences of a double-quoted JavaScript string literal.
func unescapeJS(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(s) {
			return "", errors.New("dangling backslash")
		}

		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 >= len(s) {
				return "", errors.New("truncated \\x escape")
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape: %w", err)
			}
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			r, n, err := unicodeEscape(s[i+1:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		default:
			// \" \' \\ \/ and any other character stand for themselves
			b.WriteByte(s[i])
		}
	}

	return b.String(), nil
}

// unicodeEscape decodes the hex digits following \u, joining surrogate pairs.
// It returns the rune and the number of bytes consumed after the 'u'.
func unicodeEscape(s string) (rune, int, error) {
	if len(s) < 4 {
		return 0, 0, errors.New("truncated \\u escape")
	}

	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid \\u escape: %w", err)
	}

	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 4, nil
	}

	if len(s) >= 10 && s[4:6] == `\u` {
		if low, err := strconv.ParseUint(s[6:10], 16, 16); err == nil {
			if pair := utf16.DecodeRune(r, rune(low)); pair != utf8.RuneError {
				return pair, 10, nil
			}
		}
	}

	return utf8.RuneError, 4, nil
}

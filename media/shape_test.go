package media

import (
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func single(t TrackType, uri string, qualities ...int) PlayableMedia {
	return PlayableMedia{URI: uri, TrackTypes: []TrackType{t}, Qualities: qualities}
}

func combined(uri string, qualities ...int) PlayableMedia {
	return PlayableMedia{URI: uri, TrackTypes: []TrackType{Audio, Video}, Qualities: qualities}
}

func TestClassify(t *testing.T) {
	Convey("Given a media list", t, func() {
		Convey("With one audio and one video entry and no combined entry", func() {
			shape := Classify([]PlayableMedia{
				single(Audio, "https://cdn/x/s0_a.m3u8", 0, 1),
				single(Video, "https://cdn/x/s1_v.m3u8", 0, 3, 1),
			})

			Convey("It should be a split pair at the best quality of each entry", func() {
				pair, ok := shape.(SplitPair)
				So(ok, ShouldBeTrue)
				So(pair.Audio.Type, ShouldEqual, Audio)
				So(pair.Audio.Quality, ShouldEqual, 1)
				So(pair.Audio.Source.URI, ShouldEqual, "https://cdn/x/s0_a.m3u8")
				So(pair.Video.Type, ShouldEqual, Video)
				So(pair.Video.Quality, ShouldEqual, 3)
			})
		})

		Convey("With a combined entry next to a complete split pair", func() {
			shape := Classify([]PlayableMedia{
				single(Audio, "https://cdn/x/s0_a.m3u8", 1),
				combined("https://cdn/x/s1_av.m3u8", 0, 1),
				single(Video, "https://cdn/x/s2_v.m3u8", 1),
			})

			Convey("The combined entry should take precedence", func() {
				fallback, ok := shape.(CombinedSingle)
				So(ok, ShouldBeTrue)
				So(fallback.URI, ShouldEqual, "https://cdn/x/s1_av.m3u8")
				So(fallback.Candidates, ShouldHaveLength, 2)
			})
		})

		Convey("With only a combined entry", func() {
			shape := Classify([]PlayableMedia{combined("https://cdn/x/s1_av.m3u8", 1)})

			Convey("It should fall back to the combined source", func() {
				fallback, ok := shape.(CombinedSingle)
				So(ok, ShouldBeTrue)
				So(fallback.Candidates, ShouldBeEmpty)
			})
		})

		Convey("With several combined entries", func() {
			shape := Classify([]PlayableMedia{
				combined("https://cdn/x/first.m3u8", 1),
				combined("https://cdn/x/second.m3u8", 1),
			})

			Convey("The first one should be kept", func() {
				So(shape.(CombinedSingle).URI, ShouldEqual, "https://cdn/x/first.m3u8")
			})
		})

		Convey("With duplicated single-track entries", func() {
			shape := Classify([]PlayableMedia{
				single(Video, "https://cdn/x/first_v.m3u8", 0),
				single(Audio, "https://cdn/x/a.m3u8", 0),
				single(Video, "https://cdn/x/better_v.m3u8", 5),
			})

			Convey("The first entry of each type should win over a better later one", func() {
				pair := shape.(SplitPair)
				So(pair.Video.Source.URI, ShouldEqual, "https://cdn/x/first_v.m3u8")
				So(pair.Video.Quality, ShouldEqual, 0)
			})
		})

		Convey("With a missing video track and no combined entry", func() {
			shape := Classify([]PlayableMedia{
				single(Audio, "https://cdn/x/a.m3u8", 1),
				single(Audio, "https://cdn/x/a2.m3u8", 1),
			})

			Convey("It should be malformed and report incomplete tracks", func() {
				malformed, ok := shape.(Malformed)
				So(ok, ShouldBeTrue)
				So(malformed.Found, ShouldResemble, []TrackType{Audio})

				err := malformed.Err()
				So(errors.Is(err, ErrIncompleteTracks), ShouldBeTrue)
				So(errors.Is(err, ErrNoSegmentsFound), ShouldBeFalse)
				So(err.Error(), ShouldContainSubstring, "found [audio]")
			})
		})

		Convey("With an empty list", func() {
			_, ok := Classify(nil).(Malformed)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestPlayableMediaJSON(t *testing.T) {
	Convey("Given the platform's media descriptor", t, func() {
		raw := `[
			{"uri": "https://cdn/x/s0_a.m3u8", "trackType": ["Audio"], "quality": [0, 1]},
			{"uri": "https://cdn/x/s1_av.m3u8", "trackType": ["Audio", "Video"], "quality": [0]},
			{"uri": "https://cdn/x/s2_v.m3u8", "trackType": ["Video", "VIDEO"], "quality": [2]},
			{"uri": "https://cdn/x/cc.vtt", "trackType": ["Caption"], "quality": []},
			{"uri": "https://cdn/x/s3_v.m3u8", "trackType": ["Video", "Caption"], "quality": [1]}
		]`

		var medias []PlayableMedia
		So(json.Unmarshal([]byte(raw), &medias), ShouldBeNil)

		Convey("Track labels should be normalized into a set", func() {
			So(medias[0].TrackTypes, ShouldResemble, []TrackType{Audio})
			So(medias[0].BestQuality(), ShouldEqual, 1)
			So(medias[1].IsCombined(), ShouldBeTrue)
			So(medias[2].IsSingleTrack(), ShouldBeTrue)
			So(medias[3].TrackTypes, ShouldBeEmpty)
		})

		Convey("Unknown labels should not count as a track", func() {
			So(medias[3].IsSingleTrack(), ShouldBeFalse)
			So(medias[3].IsCombined(), ShouldBeFalse)
			So(medias[4].TrackTypes, ShouldResemble, []TrackType{Video})
			So(medias[4].IsCombined(), ShouldBeFalse)
		})
	})
}

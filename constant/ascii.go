package constant

// AsciiArtLogo is the banner shown above the root command help.
const AsciiArtLogo = `           _               _ _
  ___  ___| |__   ___   __| | |
 / _ \/ __| '_ \ / _ \ / _' | |
|  __/ (__| | | | (_) | (_| | |
 \___|\___|_| |_|\___/ \__,_|_|`

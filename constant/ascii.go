package constant

// AsciiArtLogo is the banner shown above the root command help.
const AsciiArtLogo = `
   __ _  _ __  (_) ___  _   _  _ __    ___
  / _' || '_ \ | |/ __|| | | || '_ \  / __|
 | (_| || | | || |\__ \| |_| || | | || (__
  \__,_||_| |_||_||___/ \__, ||_| |_| \___|
                        |___/`

package model

// Version is the current release, compared against GitHub tags by --update.
const Version = "1.2.0"

package gen

// Version of core-savior.
const Version = "v0.1.0"

package strictdata

// Version is the library release, overridden at link time by release builds.
var Version = "0.1.0"

package storybuilder

// Version is the release version, overridable at link time with
// -ldflags "-X github.com/aretw0/storybuilder.Version=...".
var Version = "0.3.0"

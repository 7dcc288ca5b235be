package system

// unsupportedPlatform serves operating systems without dedicated fact sources.
// Only the cross-platform facts are available.
type unsupportedPlatform struct {
	common
}

//go:build !dreamcast

package testing

func setup()       {}
func teardown(int) {}

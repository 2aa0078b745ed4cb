//go:build !dreamcast

package holly

func defaultPort() Port { return new(Sim) }

package client

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// APIVersion is the REST API generation this client speaks.
const APIVersion = "v1"

// ErrIncompatible reports a server the client cannot talk to.
type ErrIncompatible struct {
	Client, Server string
	Reason         string
}

func (e *ErrIncompatible) Error() string {
	return fmt.Sprintf("client %s is not compatible with server %s: %s", e.Client, e.Server, e.Reason)
}

// CheckCompatible accepts a server speaking the same API generation whose
// release has the client's major version and at least its minor version.
// Development builds on either side skip the version comparison.
func CheckCompatible(clientVersion string, info *ServerInfo) error {
	server := info.Build.Version
	if info.APIVersion != APIVersion {
		return &ErrIncompatible{Client: clientVersion, Server: server,
			Reason: fmt.Sprintf("server API %q, client API %q", info.APIVersion, APIVersion)}
	}

	cv, err := semver.NewVersion(clientVersion)
	if err != nil {
		return nil
	}
	sv, err := semver.NewVersion(server)
	if err != nil {
		return nil
	}

	c, err := semver.NewConstraint(fmt.Sprintf(">= %d.%d.0-0, < %d.0.0-0", cv.Major(), cv.Minor(), cv.Major()+1))
	if err != nil {
		return fmt.Errorf("build version constraint: %w", err)
	}
	if !c.Check(sv) {
		return &ErrIncompatible{Client: clientVersion, Server: server,
			Reason: fmt.Sprintf("server must satisfy %s", c)}
	}
	return nil
}

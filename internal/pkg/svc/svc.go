package svc

// Svc contains the service information.
type Svc struct {
	// Version is the service version.
	Version string

	// Name is the name of the service.
	Name string
}

// svc holds the process-wide service information.
var svc Svc

// GetVersion returns the service version.
func (s Svc) GetVersion() string {
	return s.Version
}

// GetName returns the service name.
func (s Svc) GetName() string {
	return s.Name
}

// SetVersion sets the service version once.
func SetVersion(version string) {
	if svc.Version != "" {
		return
	}
	svc.Version = version
}

// SetName sets the service name once.
func SetName(name string) {
	if svc.Name != "" {
		return
	}
	svc.Name = name
}

// Info returns the service information.
func Info() Svc {
	return svc
}

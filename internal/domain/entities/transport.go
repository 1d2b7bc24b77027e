package entities

import "time"

// TransportOptions are the settings a transport carries between requests.
// A replacement transport must be built from the same options.
type TransportOptions struct {
	Headers   map[string]string
	UserAgent string
	Timeout   time.Duration
}

// Clone returns a copy that does not share the header map
func (o TransportOptions) Clone() TransportOptions {
	c := o
	if o.Headers != nil {
		c.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			c.Headers[k] = v
		}
	}
	return c
}

package modkit

// Option configures a module at construction
type Option func(*Built)

// WithName names the module in logs and the ports registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithPorts hands a module the ports it requires from other modules; the module owns type T
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

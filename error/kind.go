package error

// Kind is a named template for errors that share a name and construction options,
// standing in for a dedicated error subtype.
//
//	var NotFound = apiError.NewKind("NotFoundError", apiError.WithCode("NOT_FOUND"))
//	err := NotFound.New("user 42 not found", map[string]any{"user_id": 42})
//
// Errors built from a Kind are plain *Error values; the kind only sets their defaults.
type Kind struct {
	name string
	opts []Option
}

// NewKind creates a Kind whose errors are named name and configured by opts.
func NewKind(name string, opts ...Option) *Kind {
	return &Kind{name: name, opts: opts}
}

func (k *Kind) Name() string { return k.name }

// New builds an Error of this kind. Per-call opts are applied after the kind's own.
func (k *Kind) New(message string, detail map[string]any, opts ...Option) *Error {
	all := make([]Option, 0, len(k.opts)+len(opts)+1)
	all = append(all, WithName(k.name))
	all = append(all, k.opts...)
	all = append(all, opts...)

	return newError(message, detail, all)
}

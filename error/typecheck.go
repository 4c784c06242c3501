package error

import "reflect"

// maxEmbedDepth bounds the walk through embedded fields.
const maxEmbedDepth = 16

// IsErrorType reports whether value's runtime type is T, implements T when T is an
// interface, or embeds (at any depth) a field that does. Nil values never match.
//
//	apiError.IsErrorType[*apiError.Error](err)
//	apiError.IsErrorType[contract.Error](err)
func IsErrorType[T any](value any) bool {
	if isNil(value) {
		return false
	}

	return matchesType(reflect.ValueOf(value), reflect.TypeOf((*T)(nil)).Elem(), 0)
}

// IsErrorTypeOf is IsErrorType with the candidate given as a typed nil exemplar.
// A pointer to an interface, such as (*contract.Error)(nil), stands for the interface.
func IsErrorTypeOf(value, target any) bool {
	t := targetType(target)
	if isNil(value) || t == nil {
		return false
	}

	return matchesType(reflect.ValueOf(value), t, 0)
}

// targetType resolves a typed nil exemplar into the candidate type, or nil for a nil target.
func targetType(target any) reflect.Type {
	if target == nil {
		return nil
	}

	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}

	return t
}

func matchesType(v reflect.Value, t reflect.Type, depth int) bool {
	if sameOrImplements(v.Type(), t) {
		return true
	}

	if depth >= maxEmbedDepth {
		return false
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return false
	}

	st := v.Type()
	for i := 0; i < st.NumField(); i++ {
		if !st.Field(i).Anonymous {
			continue
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Interface {
			if fv.IsNil() {
				continue
			}

			fv = fv.Elem()
		}

		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			if sameOrImplements(fv.Type(), t) {
				return true
			}

			continue
		}

		if matchesType(fv, t, depth+1) {
			return true
		}
	}

	return false
}

func sameOrImplements(vt, t reflect.Type) bool {
	return vt == t || (t.Kind() == reflect.Interface && vt.Implements(t))
}

package runtime

import "github.com/risor-io/risor/object"

// goToObject converts a native Go value to a Risor object. Values that are
// already Risor objects pass through unchanged.
func goToObject(v any) object.Object {
	if v == nil {
		return object.Nil
	}
	if obj, ok := v.(object.Object); ok {
		return obj
	}
	obj := object.FromGoType(v)
	if obj == nil {
		return object.Nil
	}
	return obj
}

// objectToGo recursively converts a Risor object to a native Go value.
func objectToGo(obj object.Object) any {
	if obj == nil {
		return nil
	}

	switch o := obj.(type) {
	case *object.Map:
		goMap := make(map[string]any, len(o.Value()))
		for k, v := range o.Value() {
			goMap[k] = objectToGo(v)
		}
		return goMap
	case *object.List:
		items := o.Value()
		goSlice := make([]any, len(items))
		for i, v := range items {
			goSlice[i] = objectToGo(v)
		}
		return goSlice
	case *object.NilType:
		return nil
	default:
		// String, Int, Float, Bool, etc. expose their native Go value.
		return obj.Interface()
	}
}

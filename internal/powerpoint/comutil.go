package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// Variant helpers. Scalar reads clear the variant after copying its
// value out; dispatch reads hand the contained reference to the caller,
// who releases it.

func getString(disp *ole.IDispatch, prop string, args ...interface{}) (string, error) {
	v, err := oleutil.GetProperty(disp, prop, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", prop, err)
	}
	defer v.Clear()
	return v.ToString(), nil
}

func getInt(disp *ole.IDispatch, prop string, args ...interface{}) (int, error) {
	v, err := oleutil.GetProperty(disp, prop, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", prop, err)
	}
	defer v.Clear()
	return int(variantFloat(v)), nil
}

func getFloat(disp *ole.IDispatch, prop string) (float64, error) {
	v, err := oleutil.GetProperty(disp, prop)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", prop, err)
	}
	defer v.Clear()
	return variantFloat(v), nil
}

// getTriState reads an msoTriState property as a bool.
func getTriState(disp *ole.IDispatch, prop string) (bool, error) {
	n, err := getInt(disp, prop)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func getDispatch(disp *ole.IDispatch, prop string, args ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(disp, prop, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", prop, err)
	}
	d := v.ToIDispatch()
	if d == nil {
		v.Clear()
		return nil, fmt.Errorf("%s: empty object", prop)
	}
	return d, nil
}

func put(disp *ole.IDispatch, prop string, value interface{}) error {
	v, err := oleutil.PutProperty(disp, prop, value)
	if err != nil {
		return fmt.Errorf("%s: %w", prop, err)
	}
	v.Clear()
	return nil
}

func call(disp *ole.IDispatch, method string, args ...interface{}) error {
	v, err := oleutil.CallMethod(disp, method, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	v.Clear()
	return nil
}

func callInt(disp *ole.IDispatch, method string, args ...interface{}) (int, error) {
	v, err := oleutil.CallMethod(disp, method, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", method, err)
	}
	defer v.Clear()
	return int(variantFloat(v)), nil
}

func callDispatch(disp *ole.IDispatch, method string, args ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(disp, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	d := v.ToIDispatch()
	if d == nil {
		v.Clear()
		return nil, fmt.Errorf("%s: empty object", method)
	}
	return d, nil
}

// collectionCount reads the Count property of an automation collection.
func collectionCount(coll *ole.IDispatch) (int, error) {
	return getInt(coll, "Count")
}

// collectionItem fetches the 1-based item of a collection. The caller
// owns the returned reference.
func collectionItem(coll *ole.IDispatch, index interface{}) (*ole.IDispatch, error) {
	return getDispatch(coll, "Item", index)
}

func release(disp *ole.IDispatch) {
	if disp != nil {
		disp.Release()
	}
}

// variantFloat widens any numeric variant to a float64. Geometry
// properties come back as VT_R4, counts as VT_I4.
func variantFloat(v *ole.VARIANT) float64 {
	switch value := v.Value().(type) {
	case float32:
		return float64(value)
	case float64:
		return value
	case int8:
		return float64(value)
	case int16:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case uint8:
		return float64(value)
	case uint16:
		return float64(value)
	case uint32:
		return float64(value)
	case uint64:
		return float64(value)
	default:
		return 0
	}
}

package codec

import (
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/bytearena"
	"github.com/wippyai/bytearena/errors"
)

// TagName is the struct tag consulted by For. A field tagged `arena:"-"` is
// not encoded and decodes to its zero value.
const TagName = "arena"

var (
	durationType    = reflect.TypeFor[time.Duration]()
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
)

type encodeFn func(b bytearena.Buffer, o Order, v reflect.Value) error

// decodeFn decodes into v, which is settable.
type decodeFn func(b bytearena.Buffer, o Order, v reflect.Value) error

type plan struct {
	goType reflect.Type
	encode encodeFn
	decode decodeFn
}

// plans caches compiled plans by Go type.
var plans sync.Map // reflect.Type -> *plan

// For returns a codec for T derived from its Go type:
//
//   - bool and fixed-width numerics in their natural width; int and uint as 8 bytes
//   - string and []byte with a u64 length prefix
//   - time.Duration as seconds and nanoseconds
//   - slices as sequences, Go arrays as fixed arrays
//   - pointers as optionals, nil being absent
//   - structs as their exported fields in declaration order
//   - types whose pointer implements Marshaler and Unmarshaler through those methods
//
// Maps, channels, functions, interfaces and complex numbers are rejected.
// Plans are compiled once per type and cached.
func For[T any]() (Codec[T], error) {
	p, err := compileType(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return reflectCodec[T]{p: p}, nil
}

type reflectCodec[T any] struct {
	p *plan
}

func (c reflectCodec[T]) Encode(b bytearena.Buffer, o Order, v T) error {
	return c.p.encode(b, o, reflect.ValueOf(&v).Elem())
}

func (c reflectCodec[T]) Decode(b bytearena.Buffer, o Order) (T, error) {
	var v T
	if err := c.p.decode(b, o, reflect.ValueOf(&v).Elem()); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func compileType(t reflect.Type) (*plan, error) {
	if cached, ok := plans.Load(t); ok {
		return cached.(*plan), nil
	}
	c := &compiler{
		pending: make(map[reflect.Type]*plan),
		done:    make(map[reflect.Type]*plan),
	}
	p, err := c.compile(t, nil)
	if err != nil {
		return nil, err
	}
	for dt, dp := range c.done {
		if dt != t {
			plans.LoadOrStore(dt, dp)
		}
	}
	actual, _ := plans.LoadOrStore(t, p)
	return actual.(*plan), nil
}

type compiler struct {
	// pending holds plans under construction so recursive types refer to
	// themselves.
	pending map[reflect.Type]*plan
	// done is published to the cache only when the whole type compiles.
	done map[reflect.Type]*plan
}

func subPath(path []string, elem string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), elem)
}

func (c *compiler) compile(t reflect.Type, path []string) (*plan, error) {
	if cached, ok := plans.Load(t); ok {
		return cached.(*plan), nil
	}
	if p, ok := c.done[t]; ok {
		return p, nil
	}
	if p, ok := c.pending[t]; ok {
		return p, nil
	}

	p := &plan{goType: t}
	c.pending[t] = p
	defer delete(c.pending, t)

	if err := c.fill(p, t, path); err != nil {
		return nil, err
	}

	Logger().Debug("compiled codec", zap.Stringer("type", t))
	c.done[t] = p
	return p, nil
}

func (c *compiler) fill(p *plan, t reflect.Type, path []string) error {
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		pt := reflect.PointerTo(t)
		if pt.Implements(marshalerType) && pt.Implements(unmarshalerType) {
			p.encode, p.decode = selfEncode, selfDecode
			return nil
		}
	}

	if t == durationType {
		p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return Duration.Encode(b, o, time.Duration(v.Int()))
		}
		p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			d, err := Duration.Decode(b, o)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return Bool.Encode(b, o, v.Bool())
		}
		p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			x, err := Bool.Decode(b, o)
			if err == nil {
				v.SetBool(x)
			}
			return err
		}
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		p.encode, p.decode = intFns(t.Kind())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		p.encode, p.decode = uintFns(t.Kind())
	case reflect.Float32, reflect.Float64:
		p.encode, p.decode = floatFns(t.Kind())
	case reflect.String:
		p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return String.Encode(b, o, v.String())
		}
		p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			s, err := String.Decode(b, o)
			if err == nil {
				v.SetString(s)
			}
			return err
		}
	case reflect.Slice:
		return c.fillSlice(p, t, path)
	case reflect.Array:
		return c.fillArray(p, t, path)
	case reflect.Pointer:
		return c.fillPointer(p, t, path)
	case reflect.Struct:
		return c.fillStruct(p, t, path)
	default:
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("unsupported kind %s", t.Kind()).
			Build()
	}
	return nil
}

func selfEncode(b bytearena.Buffer, o Order, v reflect.Value) error {
	if !v.CanAddr() {
		cp := reflect.New(v.Type())
		cp.Elem().Set(v)
		v = cp.Elem()
	}
	return v.Addr().Interface().(Marshaler).MarshalArena(b, o)
}

func selfDecode(b bytearena.Buffer, o Order, v reflect.Value) error {
	return v.Addr().Interface().(Unmarshaler).UnmarshalArena(b, o)
}

func intFns(k reflect.Kind) (encodeFn, decodeFn) {
	var enc func(bytearena.Buffer, Order, int64) error
	var dec func(bytearena.Buffer, Order) (int64, error)
	switch k {
	case reflect.Int8:
		enc = func(b bytearena.Buffer, o Order, x int64) error { return I8.Encode(b, o, int8(x)) }
		dec = func(b bytearena.Buffer, o Order) (int64, error) { x, err := I8.Decode(b, o); return int64(x), err }
	case reflect.Int16:
		enc = func(b bytearena.Buffer, o Order, x int64) error { return I16.Encode(b, o, int16(x)) }
		dec = func(b bytearena.Buffer, o Order) (int64, error) { x, err := I16.Decode(b, o); return int64(x), err }
	case reflect.Int32:
		enc = func(b bytearena.Buffer, o Order, x int64) error { return I32.Encode(b, o, int32(x)) }
		dec = func(b bytearena.Buffer, o Order) (int64, error) { x, err := I32.Decode(b, o); return int64(x), err }
	default:
		enc = I64.Encode
		dec = I64.Decode
	}
	return func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return enc(b, o, v.Int())
		}, func(b bytearena.Buffer, o Order, v reflect.Value) error {
			x, err := dec(b, o)
			if err == nil {
				v.SetInt(x)
			}
			return err
		}
}

func uintFns(k reflect.Kind) (encodeFn, decodeFn) {
	var enc func(bytearena.Buffer, Order, uint64) error
	var dec func(bytearena.Buffer, Order) (uint64, error)
	switch k {
	case reflect.Uint8:
		enc = func(b bytearena.Buffer, o Order, x uint64) error { return U8.Encode(b, o, uint8(x)) }
		dec = func(b bytearena.Buffer, o Order) (uint64, error) { x, err := U8.Decode(b, o); return uint64(x), err }
	case reflect.Uint16:
		enc = func(b bytearena.Buffer, o Order, x uint64) error { return U16.Encode(b, o, uint16(x)) }
		dec = func(b bytearena.Buffer, o Order) (uint64, error) { x, err := U16.Decode(b, o); return uint64(x), err }
	case reflect.Uint32:
		enc = func(b bytearena.Buffer, o Order, x uint64) error { return U32.Encode(b, o, uint32(x)) }
		dec = func(b bytearena.Buffer, o Order) (uint64, error) { x, err := U32.Decode(b, o); return uint64(x), err }
	default:
		enc = U64.Encode
		dec = U64.Decode
	}
	return func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return enc(b, o, v.Uint())
		}, func(b bytearena.Buffer, o Order, v reflect.Value) error {
			x, err := dec(b, o)
			if err == nil {
				v.SetUint(x)
			}
			return err
		}
}

func floatFns(k reflect.Kind) (encodeFn, decodeFn) {
	if k == reflect.Float32 {
		return func(b bytearena.Buffer, o Order, v reflect.Value) error {
				return F32.Encode(b, o, float32(v.Float()))
			}, func(b bytearena.Buffer, o Order, v reflect.Value) error {
				x, err := F32.Decode(b, o)
				if err == nil {
					v.SetFloat(float64(x))
				}
				return err
			}
	}
	return func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return F64.Encode(b, o, v.Float())
		}, func(b bytearena.Buffer, o Order, v reflect.Value) error {
			x, err := F64.Decode(b, o)
			if err == nil {
				v.SetFloat(x)
			}
			return err
		}
}

func (c *compiler) fillSlice(p *plan, t reflect.Type, path []string) error {
	if t.Elem().Kind() == reflect.Uint8 {
		p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			return Bytes.Encode(b, o, v.Bytes())
		}
		p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
			raw, err := Bytes.Decode(b, o)
			if err != nil {
				return err
			}
			s := reflect.MakeSlice(t, len(raw), len(raw))
			reflect.Copy(s, reflect.ValueOf(raw))
			v.Set(s)
			return nil
		}
		return nil
	}

	elem, err := c.compile(t.Elem(), subPath(path, "[elem]"))
	if err != nil {
		return err
	}
	p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		n := v.Len()
		if err := writeSize(b, o, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := elem.encode(b, o, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		n, err := readSize(b, o)
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(t, 0, preallocate(b, n))
		tmp := reflect.New(t.Elem()).Elem()
		for i := 0; i < n; i++ {
			tmp.SetZero()
			if err := elem.decode(b, o, tmp); err != nil {
				return err
			}
			s = reflect.Append(s, tmp)
		}
		v.Set(s)
		return nil
	}
	return nil
}

func (c *compiler) fillArray(p *plan, t reflect.Type, path []string) error {
	elem, err := c.compile(t.Elem(), subPath(path, "[elem]"))
	if err != nil {
		return err
	}
	n := t.Len()
	p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		if err := writeSize(b, o, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := elem.encode(b, o, v.Index(i)); err != nil {
				return errors.AtIndex(errors.PhaseEncode, nil, i, err)
			}
		}
		return nil
	}
	p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		got, err := readSize(b, o)
		if err != nil {
			return err
		}
		if got != n {
			return errors.Other(errors.PhaseDecode, nil, "array size %d does not match %d", got, n)
		}
		out := reflect.New(t).Elem()
		for i := 0; i < n; i++ {
			if err := elem.decode(b, o, out.Index(i)); err != nil {
				return errors.AtIndex(errors.PhaseDecode, nil, i, err)
			}
		}
		v.Set(out)
		return nil
	}
	return nil
}

func (c *compiler) fillPointer(p *plan, t reflect.Type, path []string) error {
	elem, err := c.compile(t.Elem(), path)
	if err != nil {
		return err
	}
	p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		if v.IsNil() {
			return WriteTag(b, TagAbsent)
		}
		if err := WriteTag(b, TagPresent); err != nil {
			return err
		}
		return elem.encode(b, o, v.Elem())
	}
	p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		tag, err := readRawTag(b)
		if err != nil {
			return err
		}
		switch tag {
		case TagAbsent:
			v.SetZero()
			return nil
		case TagPresent:
			nv := reflect.New(t.Elem())
			if err := elem.decode(b, o, nv.Elem()); err != nil {
				return err
			}
			v.Set(nv)
			return nil
		default:
			return errors.InvalidDiscriminant(errors.PhaseDecode, nil, "option", tag)
		}
	}
	return nil
}

type compiledField struct {
	index int
	plan  *plan
}

func (c *compiler) fillStruct(p *plan, t reflect.Type, path []string) error {
	fields := make([]compiledField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get(TagName) == "-" {
			continue
		}
		fp, err := c.compile(f.Type, subPath(path, f.Name))
		if err != nil {
			return err
		}
		fields = append(fields, compiledField{index: i, plan: fp})
	}

	p.encode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		for _, f := range fields {
			if err := f.plan.encode(b, o, v.Field(f.index)); err != nil {
				return err
			}
		}
		return nil
	}
	p.decode = func(b bytearena.Buffer, o Order, v reflect.Value) error {
		out := reflect.New(t).Elem()
		for _, f := range fields {
			if err := f.plan.decode(b, o, out.Field(f.index)); err != nil {
				return err
			}
		}
		v.Set(out)
		return nil
	}
	return nil
}

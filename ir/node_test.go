package ir

import (
	"testing"
)

func TestKeyLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want bool
	}{
		{"int before string", IntKey(5), StringKey("a"), true},
		{"string after int", StringKey("a"), IntKey(5), false},
		{"ints numeric", IntKey(2), IntKey(10), true},
		{"strings lexicographic", StringKey("a"), StringKey("b"), true},
		{"equal strings", StringKey("a"), StringKey("a"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestKeyEqual(t *testing.T) {
	if StringKey("1").Equal(IntKey(1)) {
		t.Error("string key 1 and int key 1 are distinct")
	}
	if !IntKey(3).Equal(IntKey(3)) {
		t.Error("equal int keys")
	}
}

func TestMapOrderPreserved(t *testing.T) {
	m := NewMap()
	m.Set(StringKey("z"), FromInt(1))
	m.Set(StringKey("a"), FromInt(2))
	m.Set(StringKey("m"), FromInt(3))
	m.Set(StringKey("z"), FromInt(9)) // replace keeps position

	want := []string{"z", "a", "m"}
	for i, k := range m.Keys {
		if k.Str != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, k.Str, want[i])
		}
	}
	if v, _ := m.Get(StringKey("z")); !v.Equal(FromInt(9)) {
		t.Errorf("z = %s, want 9", v)
	}
}

func TestDelete(t *testing.T) {
	m := NewMap()
	m.Set(StringKey("a"), FromInt(1))
	m.Set(StringKey("b"), FromInt(2))
	if !m.Delete(StringKey("a")) {
		t.Fatal("Delete(a) = false")
	}
	if m.Delete(StringKey("a")) {
		t.Error("second Delete(a) should be false")
	}
	if m.Len() != 1 || !m.Keys[0].Equal(StringKey("b")) {
		t.Errorf("map after delete = %s", m)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := NewMap()
	sub := NewMap()
	sub.Set(StringKey("x"), FromInt(1))
	m.Set(StringKey("sub"), sub)

	c := m.Clone()
	csub, _ := c.Get(StringKey("sub"))
	csub.Set(StringKey("x"), FromInt(99))

	if v, _ := sub.Get(StringKey("x")); !v.Equal(FromInt(1)) {
		t.Errorf("clone mutation leaked into original: %s", v)
	}
	if !m.Equal(m.Clone()) {
		t.Error("clone should compare equal")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		n    *Node
		want string
	}{
		{Null(), "NULL"},
		{FromBool(true), "true"},
		{FromBool(false), "false"},
		{FromInt(-3), "-3"},
		{FromFloat(2.5), "2.5"},
		{FromFloat(3), "3"},
		{FromString("word"), "word"},
	}
	for _, tt := range tests {
		if got := tt.n.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestOrderKeys(t *testing.T) {
	m := NewMap()
	m.Set(StringKey("b"), FromInt(1))
	m.Set(IntKey(2), FromInt(2))
	m.Set(StringKey("a"), FromInt(3))
	m.Set(IntKey(1), FromInt(4))
	OrderKeys(m)

	want := []Key{IntKey(1), IntKey(2), StringKey("a"), StringKey("b")}
	for i, k := range m.Keys {
		if !k.Equal(want[i]) {
			t.Errorf("key[%d] = %v, want %v", i, k, want[i])
		}
	}
}

func TestOrderKeysRecursive(t *testing.T) {
	m := NewMap()
	sub := NewMap()
	sub.Set(StringKey("z"), FromInt(1))
	sub.Set(StringKey("a"), FromInt(2))
	m.Set(StringKey("sub"), sub)
	OrderKeys(m)
	if !sub.Keys[0].Equal(StringKey("a")) {
		t.Errorf("nested keys unsorted: %s", sub)
	}
}

func TestInterfaceRoundTrip(t *testing.T) {
	m := NewMap()
	m.Set(StringKey("a"), FromInt(1))
	m.Set(StringKey("b"), FromSlice([]*Node{FromFloat(2.5), FromString("x")}))
	m.Set(StringKey("c"), Null())

	back, err := FromInterface(m.Interface())
	if err != nil {
		t.Fatalf("FromInterface() error: %v", err)
	}
	// map iteration order is lost on the way through any; compare
	// entries individually
	for _, key := range []string{"a", "b", "c"} {
		wantV, _ := m.Get(StringKey(key))
		gotV, ok := back.Get(StringKey(key))
		if !ok || !gotV.Equal(wantV) {
			t.Errorf("%s = %s, want %s", key, gotV, wantV)
		}
	}
}

func TestFromInterfaceRejectsUnknown(t *testing.T) {
	if _, err := FromInterface(struct{}{}); err == nil {
		t.Error("expected error for an unconvertible type")
	}
}

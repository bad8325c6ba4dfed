package testutil

import "testing"

func TestAssertEqual_Slices(t *testing.T) {
	AssertEqual(t, []string{"admin", "root"}, []string{"admin", "root"}, "string slices")
	AssertDeepEqual(t, []int{1, 2}, []int{1, 2}, "int slices")
	AssertDeepEqual(t, map[string]int{"admin": 1}, map[string]int{"admin": 1}, "maps")
}

func TestAssertEqual_Scalars(t *testing.T) {
	AssertEqual(t, 3, 3, "ints")
	AssertEqual(t, "admin", "admin", "strings")
	AssertEqual(t, nil, nil, "nil")
}

func TestLines(t *testing.T) {
	AssertDeepEqual(t, Lines("admin\n\n  \nroot\n"), []string{"admin", "root"}, "blank lines dropped")
}

package convert

import (
	"strconv"

	"github.com/jinzhu/copier"
)

type StrTo string

func (s StrTo) String() string {
	return string(s)
}

func (s StrTo) Int() (int, error) {
	v, err := strconv.Atoi(s.String())
	return v, err
}

func (s StrTo) MustInt() int {
	v, _ := s.Int()
	return v
}

func (s StrTo) Int64() (int64, error) {
	v, err := strconv.ParseInt(s.String(), 10, 64)
	return v, err
}

func (s StrTo) MustInt64() int64 {
	v, _ := s.Int64()
	return v
}

// StructAssign 把 src 与 dst 的相同字段名的值复制到 dst 中
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// Bool2Int converts a boolean to its database representation.
func Bool2Int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

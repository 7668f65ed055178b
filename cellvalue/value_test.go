package cellvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextValue(t *testing.T) {
	v := Text("hello")
	assert.Equal(t, KindText, v.Kind())
	s, ok := v.AsText()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
	assert.Equal(t, "hello", v.Display())
}

func TestNumberValue(t *testing.T) {
	v := Number(5)
	assert.Equal(t, KindNumber, v.Kind())
	n, ok := v.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 5.0, n)
	assert.Equal(t, "5", v.Display())
}

func TestArithErrorDisplay(t *testing.T) {
	assert.Equal(t, "#ARITHM!", ArithErr(Div0).Display())
	assert.Equal(t, "#VALUE!", ArithErr(Value).Display())
	assert.Equal(t, "#REF!", ArithErr(Ref).Display())
}

func TestEqual(t *testing.T) {
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Number(2)))
	assert.False(t, Number(1).Equal(Text("1")))
	assert.True(t, ArithErr(Div0).Equal(ArithErr(Div0)))
}

func TestZeroValueIsEmptyText(t *testing.T) {
	var v CellValue
	assert.Equal(t, KindText, v.Kind())
	s, ok := v.AsText()
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNoodleValid(t *testing.T) {
	assert.True(t, NoodleSpaghetti.Valid())
	assert.True(t, NoodlePenne.Valid())
	assert.True(t, NoodleFettucine.Valid())
	assert.False(t, Noodle("").Valid())
	assert.False(t, Noodle("烏龍麵").Valid())
}

func TestCartLineValidate(t *testing.T) {
	line := CartLine{Product: primitive.NewObjectID(), Quantity: 1, Noodle: NoodleSpaghetti}
	assert.NoError(t, line.Validate())

	cases := []struct {
		name    string
		mutate  func(*CartLine)
		message string
	}{
		{"missing product", func(l *CartLine) { l.Product = primitive.NilObjectID }, "缺少商品欄位"},
		{"zero quantity", func(l *CartLine) { l.Quantity = 0 }, "缺少商品數量"},
		{"negative quantity", func(l *CartLine) { l.Quantity = -1 }, "缺少商品數量"},
		{"missing noodle", func(l *CartLine) { l.Noodle = "" }, "缺少麵條種類"},
		{"unknown noodle", func(l *CartLine) { l.Noodle = "烏龍麵" }, "麵條種類錯誤"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := line
			tc.mutate(&l)

			var fe *FieldError
			require.ErrorAs(t, l.Validate(), &fe)
			assert.Equal(t, tc.message, fe.Message)
		})
	}
}

func TestOrderValidate(t *testing.T) {
	o := Order{
		User:    primitive.NewObjectID(),
		Cart:    []CartLine{{Product: primitive.NewObjectID(), Quantity: 1, Noodle: NoodlePenne}},
		Name:    "王小明",
		Phone:   "0912345678",
		Address: "台北市",
	}
	assert.NoError(t, o.Validate())

	empty := o
	empty.Cart = nil
	var fe *FieldError
	require.ErrorAs(t, empty.Validate(), &fe)
	assert.Equal(t, "購物車不能為空", fe.Message)

	noName := o
	noName.Name = ""
	require.ErrorAs(t, noName.Validate(), &fe)
	assert.Equal(t, "缺少取件人姓名", fe.Message)
}

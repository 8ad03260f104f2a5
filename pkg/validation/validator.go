package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MsgBadPayload is returned when the body cannot be bound at all.
const MsgBadPayload = "資料格式錯誤"

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for domain validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		// Domain aliases
		v.RegisterAlias("account", "alphanum,min=4,max=20")
		v.RegisterAlias("noodle", "oneof=直麵 筆管麵 寬扁麵")
	}
}

// fieldMessages maps (json field, tag) to the localized message shown
// to the caller. "*" catches every other tag for that field.
var fieldMessages = map[string]map[string]string{
	"account": {
		"required": "缺少使用者帳號",
		"*":        "使用者帳號格式錯誤",
	},
	"email": {
		"required": "缺少使用者信箱",
		"*":        "使用者信箱格式錯誤",
	},
	"password": {
		"required": "缺少使用者密碼",
		"*":        "使用者密碼長度不符",
	},
	"product": {
		"required": "缺少商品欄位",
	},
	"quantity": {
		"required": "缺少商品數量",
	},
	"noodle": {
		"required": "缺少麵條種類",
		"*":        "麵條種類錯誤",
	},
	"name": {
		"required": "缺少取件人姓名",
	},
	"phone": {
		"required": "缺少取件人電話",
	},
	"address": {
		"required": "缺少取件人地址",
	},
	"price": {
		"required": "缺少商品價格",
		"*":        "商品價格錯誤",
	},
	"category": {
		"required": "缺少商品分類",
	},
}

// FirstMessage converts a binding error into the first offending
// field's localized message, the way the document layer reports the
// first violated schema rule.
func FirstMessage(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msgs, ok := fieldMessages[fe.Field()]; ok {
			if msg, ok := msgs[fe.Tag()]; ok {
				return msg
			}
			if msg, ok := msgs["*"]; ok {
				return msg
			}
		}
		return fe.Field() + " 欄位錯誤"
	}
	return MsgBadPayload
}

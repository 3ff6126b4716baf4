// Package validator wraps go-playground/validator for gin binding and
// registers domain validation tags.
package validator

import (
	"reflect"
	"sync"

	"github.com/daybookhq/journal-sync-service/pkg/util"

	val "github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	once     sync.Once
	Validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if reflect.ValueOf(obj).Kind() == reflect.Ptr && reflect.ValueOf(obj).Elem().Kind() != reflect.Struct {
		return nil
	}
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.Validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.Validate = val.New()
		v.Validate.SetTagName("binding")

		// videolink: value must be on the video host allow-list
		// videolink: 值必须在视频站点白名单内
		_ = v.Validate.RegisterValidation("videolink", func(fl val.FieldLevel) bool {
			link := fl.Field().String()
			if link == "" {
				return true
			}
			return util.IsValidVideoLink(link)
		})
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

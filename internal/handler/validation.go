package handler

import (
	"sync"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

var registerOnce sync.Once

// RegisterValidators adds the enumeration rules used in binding tags to
// gin's validator. It must run before the first request is bound.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Panic("gin validator engine is not go-playground/validator")
		}
		rules := map[string]func(string) bool{
			"board_background": model.IsBoardBackground,
			"label_color":      model.IsLabelColor,
			"card_priority":    model.IsCardPriority,
			"member_role":      model.IsMemberRole,
			"user_theme":       model.IsUserTheme,
		}
		for tag, check := range rules {
			err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			})
			if err != nil {
				log.WithError(err).WithField("tag", tag).Panic("failed to register validation rule")
			}
		}
	})
}

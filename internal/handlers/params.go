package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/dartview/internal/models"
)

// Query parameter defaults
const (
	defaultYear       = "2022"
	defaultMultiYears = "2020,2021,2022"
	defaultChartYears = "2018,2019,2020,2021,2022"
	defaultAIYears    = "2020,2021,2022"
	defaultReportCode = models.ReportAnnual
)

// yearQuery is a single-year statement request
type yearQuery struct {
	Year       string `query:"year" validate:"len=4,numeric"`
	ReportCode string `query:"reprt_code" validate:"reprt_code"`
}

// yearsQuery is a multi-year statement request
type yearsQuery struct {
	Years      []string `query:"years" validate:"min=1,dive,len=4,numeric"`
	ReportCode string   `query:"reprt_code" validate:"reprt_code"`
}

// compareQuery lists the companies to compare for one year
type compareQuery struct {
	Codes []string `query:"codes" validate:"min=2,max=5,dive,required"`
	Year  string   `query:"year" validate:"len=4,numeric"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("reprt_code", func(fl validator.FieldLevel) bool {
		return models.IsReportCode(fl.Field().String())
	})
	// Report violations by query parameter name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateQuery validates params and turns violations into one readable message
func validateQuery(params interface{}) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, describeFieldError(fe))
	}
	return fmt.Errorf("잘못된 요청 파라미터입니다: %s", strings.Join(problems, ", "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "len", "numeric":
		return fmt.Sprintf("%s 값 %q는 4자리 연도여야 합니다", fe.Field(), fe.Value())
	case "reprt_code":
		return fmt.Sprintf("%s 값 %q는 %s, %s, %s, %s 중 하나여야 합니다", fe.Field(), fe.Value(),
			models.ReportAnnual, models.ReportSemiannual, models.ReportQ1, models.ReportQ3)
	case "min":
		return fmt.Sprintf("%s는 최소 %s개가 필요합니다", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s는 최대 %s개까지 가능합니다", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s 검증 실패 (%s)", fe.Field(), fe.Tag())
	}
}

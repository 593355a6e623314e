package test

import "encoding/json"

func MustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// MustMarshalResponse возвращает JSON ответа строкой, чтобы сравнивать его с телом ответа.
func MustMarshalResponse(v interface{}) string {
	return string(MustMarshal(v))
}

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	Required = "Не указано поле"
	Min      = "Минимальная длина поля %s"
	Max      = "Максимальная длина поля %s"
	Lte      = "Значение не может быть больше %s"
	Gte      = "Значение не может быть меньше %s"
	OneOf    = "Значение должно быть одним из: %s"
	Len      = "Количество элементов должно быть %s"
	Closed   = "Выделение не замкнуто"
	Inside   = "Точка %s вне изображения"

	ExpectedError            = `{"error":%q}`
	ExpectedValidationError  = `{%q:%q}`
	ExpectedValidationErrors = `{%s}`

	InternalServerErrorMessage = "Internal Server Error\n"
	UnauthorizedMessage        = "Unauthorized\n"
)

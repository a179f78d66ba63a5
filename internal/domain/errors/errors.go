package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrTodoNotFound       = errors.New("задача не найдена")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrEmailInUse         = errors.New("email уже используется")
	ErrInvalidInput       = errors.New("некорректные входные данные")
	ErrDatabaseConnection = errors.New("ошибка соединения с базой данных")
	ErrStorageUnavailable = errors.New("хранилище недоступно")
	ErrValidationFailed   = errors.New("ошибка валидации")
	ErrNotAuthenticated   = errors.New("требуется вход в систему")
	ErrForbidden          = errors.New("доступ запрещён")
	ErrInternalServer     = errors.New("внутренняя ошибка сервера")
	ErrBadRequest         = errors.New("неверный запрос")
	ErrNotFound           = errors.New("ресурс не найден")
	ErrTooManyRequests    = errors.New("слишком много запросов")

	ErrConfigFileReadFailed = errors.New("не удалось прочитать файл конфигурации")
	ErrConfigParseFailed    = errors.New("не удалось разобрать конфигурацию")
	ErrConfigInvalidFormat  = errors.New("некорректный формат значения")
	ErrUnknownStorage       = errors.New("неизвестный тип хранилища")

	ErrInvalidGzipRequest    = errors.New("некорректное gzip-тело запроса")
	ErrGzipCompressionFailed = errors.New("ошибка gzip-сжатия ответа")
)

// Is and As let callers that import this package as "errors" keep
// using the standard matching helpers.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

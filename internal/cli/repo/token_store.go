package repo

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// UserContextStore абстракция для хранения контекста пользователя (последний логин).
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	ClearLogin() error
}

package repository

import "context"

// Store открывает доступ ко всем репозиториям в рамках одного соединения или транзакции.
type Store interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Requests() RequestRepository
	Offers() OfferRepository
	Conversations() ConversationRepository
	Messages() MessageRepository
}

// Transactor выполняет fn в транзакции. Ошибка из fn откатывает все изменения.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// UnitOfWork объединяет чтение вне транзакции и транзакционную запись.
type UnitOfWork interface {
	Store
	Transactor
}

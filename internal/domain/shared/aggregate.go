package shared

// AggregateRoot is an Entity that records the domain events its state
// changes produce. Events stay buffered on the aggregate until the
// application layer publishes and clears them.
type AggregateRoot interface {
	Entity
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot implements the event buffer; embed it in aggregates.
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent `gorm:"-"`
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		domainEvents: make([]DomainEvent, 0),
	}
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

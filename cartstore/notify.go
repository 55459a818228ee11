package cartstore

import "context"

// NotifyFunc receives the client id and the collection ("cart" or "compare")
// that changed. Delivery is best effort; errors are not reported back.
type NotifyFunc func(clientID, collection string)

// WithNotify wraps a Store so every successful mutation fires the notifier.
// The routes layer feeds this into the websocket hub so other tabs of the
// same client learn about changes.
func WithNotify(s Store, fn NotifyFunc) Store {
	return &notifyingStore{Store: s, notify: fn}
}

type notifyingStore struct {
	Store
	notify NotifyFunc
}

func (s *notifyingStore) SetCart(ctx context.Context, clientID string, items []CartItem) error {
	if err := s.Store.SetCart(ctx, clientID, items); err != nil {
		return err
	}
	s.notify(clientID, "cart")
	return nil
}

func (s *notifyingStore) ClearCart(ctx context.Context, clientID string) error {
	if err := s.Store.ClearCart(ctx, clientID); err != nil {
		return err
	}
	s.notify(clientID, "cart")
	return nil
}

func (s *notifyingStore) AddCompare(ctx context.Context, clientID string, snapshot ProductSnapshot) error {
	if err := s.Store.AddCompare(ctx, clientID, snapshot); err != nil {
		return err
	}
	s.notify(clientID, "compare")
	return nil
}

func (s *notifyingStore) RemoveCompare(ctx context.Context, clientID string, productID uint) error {
	if err := s.Store.RemoveCompare(ctx, clientID, productID); err != nil {
		return err
	}
	s.notify(clientID, "compare")
	return nil
}

func (s *notifyingStore) ClearCompare(ctx context.Context, clientID string) error {
	if err := s.Store.ClearCompare(ctx, clientID); err != nil {
		return err
	}
	s.notify(clientID, "compare")
	return nil
}

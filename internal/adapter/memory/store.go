// Package memory provides a map-backed Store for tests and local runs. It
// honors the same atomicity and compare-and-swap semantics as the Postgres
// adapter: occupancy flips and counter bumps happen under one lock, and
// status transitions fail with domain.ErrConflict when the expected state
// has moved.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
	"github.com/roomtrack/roomtrack/internal/domain/lease"
	"github.com/roomtrack/roomtrack/internal/domain/maintenance"
	"github.com/roomtrack/roomtrack/internal/domain/message"
	"github.com/roomtrack/roomtrack/internal/domain/notification"
	"github.com/roomtrack/roomtrack/internal/domain/payment"
	"github.com/roomtrack/roomtrack/internal/domain/property"
	"github.com/roomtrack/roomtrack/internal/domain/stats"
	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

// Store keeps all entities in maps guarded by one mutex.
type Store struct {
	mu            sync.Mutex
	users         map[string]user.User
	properties    map[string]property.Property
	units         map[string]property.Unit
	leases        map[string]lease.Lease
	payments      map[string]payment.Payment
	maintenance   map[string]maintenance.Request
	messages      map[string]message.Message
	notifications map[string]notification.Notification
}

var _ database.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:         make(map[string]user.User),
		properties:    make(map[string]property.Property),
		units:         make(map[string]property.Unit),
		leases:        make(map[string]lease.Lease),
		payments:      make(map[string]payment.Payment),
		maintenance:   make(map[string]maintenance.Request),
		messages:      make(map[string]message.Message),
		notifications: make(map[string]notification.Notification),
	}
}

// Users

func (s *Store) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return fmt.Errorf("create user %s: username or email taken: %w", u.Username, domain.ErrConflict)
		}
	}
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by username %s: %w", username, domain.ErrNotFound)
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *Store) DeleteTenantCascade(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[tenantID]
	if !ok || u.Role != user.RoleTenant {
		return fmt.Errorf("delete tenant %s: %w", tenantID, domain.ErrNotFound)
	}
	for _, l := range s.leases {
		if l.TenantID == tenantID && l.Status == lease.StatusActive {
			return fmt.Errorf("tenant %s still holds an active lease: %w", tenantID, domain.ErrConflict)
		}
	}

	tenantLeases := make(map[string]bool)
	for id, l := range s.leases {
		if l.TenantID == tenantID {
			tenantLeases[id] = true
		}
	}
	for id, p := range s.payments {
		if tenantLeases[p.LeaseID] {
			delete(s.payments, id)
		}
	}
	for id, r := range s.maintenance {
		if r.TenantID == tenantID {
			delete(s.maintenance, id)
		}
	}
	for id := range tenantLeases {
		delete(s.leases, id)
	}
	for id, m := range s.messages {
		if m.SenderID == tenantID || m.ReceiverID == tenantID {
			delete(s.messages, id)
		}
	}
	for id, n := range s.notifications {
		if n.UserID == tenantID {
			delete(s.notifications, id)
		}
	}
	delete(s.users, tenantID)
	return nil
}

// Properties and units

func (s *Store) CreateProperty(_ context.Context, p *property.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[p.LandlordID]; !ok {
		return fmt.Errorf("create property %s: landlord %s: %w", p.Name, p.LandlordID, domain.ErrNotFound)
	}
	p.OccupiedUnits = 0
	p.CreatedAt = time.Now().UTC()
	s.properties[p.ID] = *p
	return nil
}

func (s *Store) GetProperty(_ context.Context, id string) (*property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, fmt.Errorf("get property %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (s *Store) ListProperties(_ context.Context) ([]property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPropertiesLocked(func(property.Property) bool { return true }), nil
}

func (s *Store) ListPropertiesByLandlord(_ context.Context, landlordID string) ([]property.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPropertiesLocked(func(p property.Property) bool { return p.LandlordID == landlordID }), nil
}

func (s *Store) listPropertiesLocked(keep func(property.Property) bool) []property.Property {
	var props []property.Property
	for _, p := range s.properties {
		if keep(p) {
			props = append(props, p)
		}
	}
	sort.Slice(props, func(i, j int) bool { return props[i].CreatedAt.Before(props[j].CreatedAt) })
	return props
}

func (s *Store) CreateUnit(_ context.Context, u *property.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[u.PropertyID]; !ok {
		return fmt.Errorf("create unit %s: property %s: %w", u.UnitNumber, u.PropertyID, domain.ErrNotFound)
	}
	for _, existing := range s.units {
		if existing.PropertyID == u.PropertyID && existing.UnitNumber == u.UnitNumber {
			return fmt.Errorf("create unit %s: number taken in property: %w", u.UnitNumber, domain.ErrConflict)
		}
	}
	u.Status = property.UnitVacant
	s.units[u.ID] = *u
	return nil
}

func (s *Store) GetUnit(_ context.Context, id string) (*property.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[id]
	if !ok {
		return nil, fmt.Errorf("get unit %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (s *Store) ListUnitsByProperty(_ context.Context, propertyID string) ([]property.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var units []property.Unit
	for _, u := range s.units {
		if u.PropertyID == propertyID {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].UnitNumber < units[j].UnitNumber })
	return units, nil
}

func (s *Store) UpdateUnitRent(_ context.Context, unitID string, rent float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[unitID]
	if !ok {
		return fmt.Errorf("update rent for unit %s: %w", unitID, domain.ErrNotFound)
	}
	u.RentAmount = rent
	s.units[unitID] = u
	return nil
}

// Occupancy

func (s *Store) MarkUnitOccupied(_ context.Context, unitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapUnitStatusLocked(unitID, property.UnitVacant, property.UnitOccupied, +1)
}

func (s *Store) MarkUnitVacant(_ context.Context, unitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapUnitStatusLocked(unitID, property.UnitOccupied, property.UnitVacant, -1)
}

func (s *Store) swapUnitStatusLocked(unitID string, from, to property.UnitStatus, delta int) error {
	u, ok := s.units[unitID]
	if !ok {
		return fmt.Errorf("unit %s: %w", unitID, domain.ErrNotFound)
	}
	if u.Status != from {
		return fmt.Errorf("unit %s already %s: %w", unitID, u.Status, domain.ErrConflict)
	}
	u.Status = to
	s.units[unitID] = u

	p := s.properties[u.PropertyID]
	p.OccupiedUnits += delta
	s.properties[u.PropertyID] = p
	return nil
}

// Leases

func (s *Store) AssignUnit(_ context.Context, l *lease.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[l.UnitID]
	if !ok {
		return fmt.Errorf("assign unit %s: %w", l.UnitID, domain.ErrNotFound)
	}
	if _, ok := s.users[l.TenantID]; !ok {
		return fmt.Errorf("tenant %s: %w", l.TenantID, domain.ErrNotFound)
	}
	for _, existing := range s.leases {
		if existing.TenantID == l.TenantID && existing.Status == lease.StatusActive {
			return fmt.Errorf("tenant %s already holds an active lease: %w", l.TenantID, domain.ErrConflict)
		}
	}
	if err := s.swapUnitStatusLocked(l.UnitID, property.UnitVacant, property.UnitOccupied, +1); err != nil {
		return err
	}

	l.MonthlyRent = u.RentAmount
	l.Status = lease.StatusActive
	l.CreatedAt = time.Now().UTC()
	s.leases[l.ID] = *l
	return nil
}

func (s *Store) GetLease(_ context.Context, id string) (*lease.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leases[id]
	if !ok {
		return nil, fmt.Errorf("get lease %s: %w", id, domain.ErrNotFound)
	}
	return &l, nil
}

func (s *Store) ActiveLeaseByTenant(_ context.Context, tenantID string) (*lease.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.leases {
		if l.TenantID == tenantID && l.Status == lease.StatusActive {
			l := l
			return &l, nil
		}
	}
	return nil, fmt.Errorf("active lease for tenant %s: %w", tenantID, domain.ErrNotFound)
}

func (s *Store) ListLeasesByTenant(_ context.Context, tenantID string) ([]lease.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leases []lease.Lease
	for _, l := range s.leases {
		if l.TenantID == tenantID {
			leases = append(leases, l)
		}
	}
	sort.Slice(leases, func(i, j int) bool { return leases[i].CreatedAt.After(leases[j].CreatedAt) })
	return leases, nil
}

func (s *Store) TerminateLease(_ context.Context, id string, endDate time.Time) (*lease.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leases[id]
	if !ok {
		return nil, fmt.Errorf("lease %s: %w", id, domain.ErrNotFound)
	}
	if l.Status != lease.StatusActive {
		return nil, fmt.Errorf("lease %s already %s: %w", id, l.Status, domain.ErrConflict)
	}
	if err := s.swapUnitStatusLocked(l.UnitID, property.UnitOccupied, property.UnitVacant, -1); err != nil {
		return nil, err
	}
	l.Status = lease.StatusEnded
	l.EndDate = endDate
	s.leases[id] = l
	return &l, nil
}

func (s *Store) TenantLeasedFromLandlord(_ context.Context, tenantID, landlordID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.leases {
		if l.TenantID != tenantID {
			continue
		}
		u, ok := s.units[l.UnitID]
		if !ok {
			continue
		}
		if p, ok := s.properties[u.PropertyID]; ok && p.LandlordID == landlordID {
			return true, nil
		}
	}
	return false, nil
}

// Payments

func (s *Store) CreatePayment(_ context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leases[p.LeaseID]; !ok {
		return fmt.Errorf("lease %s: %w", p.LeaseID, domain.ErrNotFound)
	}
	period := payment.PeriodStart(p.PaymentDate)
	for _, existing := range s.payments {
		if existing.LeaseID == p.LeaseID && existing.Status == payment.StatusPending &&
			payment.PeriodStart(existing.PaymentDate).Equal(period) {
			return fmt.Errorf("pending payment already exists for lease %s this period: %w", p.LeaseID, domain.ErrConflict)
		}
	}
	p.Status = payment.StatusPending
	p.ReceiptGenerated = false
	p.CreatedAt = time.Now().UTC()
	s.payments[p.ID] = *p
	return nil
}

func (s *Store) GetPayment(_ context.Context, id string) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("get payment %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (s *Store) ListPaymentsByLease(_ context.Context, leaseID string) ([]payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPaymentsLocked(func(p payment.Payment) bool { return p.LeaseID == leaseID }), nil
}

func (s *Store) ListPaymentsByLandlord(_ context.Context, landlordID string) ([]payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPaymentsLocked(func(p payment.Payment) bool {
		l, ok := s.leases[p.LeaseID]
		if !ok {
			return false
		}
		u, ok := s.units[l.UnitID]
		if !ok {
			return false
		}
		prop, ok := s.properties[u.PropertyID]
		return ok && prop.LandlordID == landlordID
	}), nil
}

func (s *Store) listPaymentsLocked(keep func(payment.Payment) bool) []payment.Payment {
	var payments []payment.Payment
	for _, p := range s.payments {
		if keep(p) {
			payments = append(payments, p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.After(payments[j].CreatedAt) })
	return payments
}

func (s *Store) DecidePayment(_ context.Context, id string, status payment.Status, receiptGenerated bool) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}
	if p.Status != payment.StatusPending {
		return nil, fmt.Errorf("payment %s already %s: %w", id, p.Status, domain.ErrConflict)
	}
	p.Status = status
	p.ReceiptGenerated = receiptGenerated
	s.payments[id] = p
	return &p, nil
}

// Maintenance requests

func (s *Store) CreateMaintenanceRequest(_ context.Context, r *maintenance.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.units[r.UnitID]; !ok {
		return fmt.Errorf("create maintenance request for unit %s: %w", r.UnitID, domain.ErrNotFound)
	}
	r.Status = maintenance.StatusPending
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	s.maintenance[r.ID] = *r
	return nil
}

func (s *Store) GetMaintenanceRequest(_ context.Context, id string) (*maintenance.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.maintenance[id]
	if !ok {
		return nil, fmt.Errorf("get maintenance request %s: %w", id, domain.ErrNotFound)
	}
	return &r, nil
}

func (s *Store) UpdateMaintenanceStatus(_ context.Context, id string, from, to maintenance.Status) (*maintenance.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.maintenance[id]
	if !ok {
		return nil, fmt.Errorf("maintenance request %s: %w", id, domain.ErrNotFound)
	}
	if r.Status != from {
		return nil, fmt.Errorf("maintenance request %s is %s, not %s: %w", id, r.Status, from, domain.ErrConflict)
	}
	r.Status = to
	r.UpdatedAt = time.Now().UTC()
	s.maintenance[id] = r
	return &r, nil
}

func (s *Store) ListMaintenanceByTenant(_ context.Context, tenantID string) ([]maintenance.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listMaintenanceLocked(func(r maintenance.Request) bool { return r.TenantID == tenantID }), nil
}

func (s *Store) ListMaintenanceByLandlord(_ context.Context, landlordID string) ([]maintenance.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listMaintenanceLocked(func(r maintenance.Request) bool {
		u, ok := s.units[r.UnitID]
		if !ok {
			return false
		}
		p, ok := s.properties[u.PropertyID]
		return ok && p.LandlordID == landlordID
	}), nil
}

func (s *Store) listMaintenanceLocked(keep func(maintenance.Request) bool) []maintenance.Request {
	var reqs []maintenance.Request
	for _, r := range s.maintenance {
		if keep(r) {
			reqs = append(reqs, r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.After(reqs[j].CreatedAt) })
	return reqs
}

// Messages

func (s *Store) CreateMessage(_ context.Context, m *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[m.ReceiverID]; !ok {
		return fmt.Errorf("create message to %s: %w", m.ReceiverID, domain.ErrNotFound)
	}
	m.IsRead = false
	m.CreatedAt = time.Now().UTC()
	s.messages[m.ID] = *m
	return nil
}

func (s *Store) GetMessage(_ context.Context, id string) (*message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("get message %s: %w", id, domain.ErrNotFound)
	}
	return &m, nil
}

func (s *Store) ListMessagesForUser(_ context.Context, userID string) ([]message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []message.Message
	for _, m := range s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			msgs = append(msgs, m)
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.After(msgs[j].CreatedAt) })
	return msgs, nil
}

func (s *Store) MarkMessageRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return fmt.Errorf("mark message %s read: %w", id, domain.ErrNotFound)
	}
	m.IsRead = true
	s.messages[id] = m
	return nil
}

// Notifications

func (s *Store) CreateNotification(_ context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[n.UserID]; !ok {
		return fmt.Errorf("create notification for user %s: %w", n.UserID, domain.ErrNotFound)
	}
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()
	s.notifications[n.ID] = *n
	return nil
}

func (s *Store) GetNotification(_ context.Context, id string) (*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, fmt.Errorf("get notification %s: %w", id, domain.ErrNotFound)
	}
	return &n, nil
}

func (s *Store) ListNotificationsForUser(_ context.Context, userID string) ([]notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []notification.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return fmt.Errorf("mark notification %s read: %w", id, domain.ErrNotFound)
	}
	n.IsRead = true
	s.notifications[id] = n
	return nil
}

// Dashboard aggregates

func (s *Store) AdminStats(_ context.Context) (*stats.AdminOverview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ov := stats.AdminOverview{
		TotalUsers:      len(s.users),
		TotalProperties: len(s.properties),
	}
	for _, u := range s.users {
		switch u.Role {
		case user.RoleLandlord:
			ov.TotalLandlords++
		case user.RoleTenant:
			ov.TotalTenants++
		}
	}
	return &ov, nil
}

func (s *Store) LandlordStats(_ context.Context, landlordID string) (*stats.LandlordOverview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ov stats.LandlordOverview
	owned := make(map[string]bool)
	for id, p := range s.properties {
		if p.LandlordID != landlordID {
			continue
		}
		owned[id] = true
		ov.TotalProperties++
		ov.TotalUnits += p.TotalUnits
		ov.OccupiedUnits += p.OccupiedUnits
	}
	for _, u := range s.units {
		if owned[u.PropertyID] && u.Status == property.UnitOccupied {
			ov.ExpectedRent += u.RentAmount
		}
	}
	return &ov, nil
}

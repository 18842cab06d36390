package service

import (
	"database/sql"
	"sort"
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

// Wednesday, ISO week 10 of 2025. All engine tests run against this instant.
var testNow = time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type recordingDispatcher struct {
	sent []domain.Notification
}

func (d *recordingDispatcher) Dispatch(notification domain.Notification) {
	d.sent = append(d.sent, notification)
}

// fakeStore is an in-memory stand-in for the postgres repository. It keeps
// the same guarantees the real store makes: guarded booking inserts, swap
// pair uniqueness and compare-and-swap resolution.
type fakeStore struct {
	users     map[int64]*domain.User
	periods   map[int64]*domain.SchedulePeriod
	bookings  map[int64]*domain.ShiftBooking
	swaps     map[int64]*domain.ShiftSwap
	timeOff   map[int64]*domain.TimeOff
	nextID    int64
	createdAt time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*domain.User),
		periods:  make(map[int64]*domain.SchedulePeriod),
		bookings: make(map[int64]*domain.ShiftBooking),
		swaps:    make(map[int64]*domain.ShiftSwap),
		timeOff:  make(map[int64]*domain.TimeOff),
		// Monday of ISO week 2, well before testNow.
		createdAt: time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetUserByID(id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u := *user
	return &u, nil
}

func (f *fakeStore) addUser(companyID int64, firstName, lastName string, userType domain.UserType) *domain.User {
	user := &domain.User{
		ID:        f.id(),
		CompanyID: companyID,
		Email:     firstName + "@example.com",
		FirstName: firstName,
		LastName:  lastName,
		UserType:  userType,
		CreatedAt: f.createdAt,
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) CreateSchedulePeriod(period *domain.SchedulePeriod) error {
	period.ID = f.id()
	period.CreatedAt = f.createdAt
	for i := range period.Demands {
		period.Demands[i].ID = f.id()
		period.Demands[i].SchedulePeriodID = period.ID
	}
	stored := *period
	stored.Demands = append([]domain.SchedulePeriodDemand(nil), period.Demands...)
	f.periods[period.ID] = &stored
	return nil
}

func (f *fakeStore) GetSchedulePeriodByID(id int64) (*domain.SchedulePeriod, error) {
	period, ok := f.periods[id]
	if !ok || period.DeletedAt != nil {
		return nil, sql.ErrNoRows
	}
	p := *period
	p.Demands = append([]domain.SchedulePeriodDemand(nil), period.Demands...)
	return &p, nil
}

func (f *fakeStore) GetCompanySchedules(companyID int64, publishedOnly bool, limit, offset int) ([]*domain.SchedulePeriod, int, error) {
	var periods []*domain.SchedulePeriod
	for _, period := range f.periods {
		if period.CompanyID != companyID || period.DeletedAt != nil {
			continue
		}
		if publishedOnly && !period.Published {
			continue
		}
		p := *period
		p.Demands = append([]domain.SchedulePeriodDemand(nil), period.Demands...)
		periods = append(periods, &p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].ID > periods[j].ID })
	return window(periods, limit, offset), len(periods), nil
}

func (f *fakeStore) GetPublishedScheduleID(companyID int64) (int64, error) {
	for _, period := range f.periods {
		if period.CompanyID == companyID && period.Published && period.DeletedAt == nil {
			return period.ID, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (f *fakeStore) SetSchedulePublished(id int64, published bool) error {
	period, ok := f.periods[id]
	if !ok {
		return sql.ErrNoRows
	}
	period.Published = published
	return nil
}

func (f *fakeStore) SoftDeleteSchedulePeriod(id int64) error {
	period, ok := f.periods[id]
	if !ok {
		return sql.ErrNoRows
	}
	now := testNow
	period.Published = false
	period.DeletedAt = &now
	return nil
}

func (f *fakeStore) GetDemandByID(id int64) (*domain.DemandDetails, error) {
	for _, period := range f.periods {
		for i := range period.Demands {
			if period.Demands[i].ID != id {
				continue
			}
			return &domain.DemandDetails{
				SchedulePeriodDemand: period.Demands[i],
				CompanyID:            period.CompanyID,
				Published:            period.Published,
				MaxHoursBefore:       period.MaxHoursBefore,
				PeriodName:           period.PeriodName,
				PeriodCreatedAt:      period.CreatedAt,
				PeriodDeletedAt:      period.DeletedAt,
			}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) CreateBookingGuarded(booking *domain.ShiftBooking, quantity int32) error {
	live := 0
	for _, b := range f.bookings {
		if b.DeletedAt != nil || b.DemandID != booking.DemandID || b.Week != booking.Week || b.Year != booking.Year {
			continue
		}
		if b.UserID == booking.UserID {
			return domain.ErrDuplicateBooking
		}
		live++
	}
	if live >= int(quantity) {
		return domain.ErrCapacityExceeded
	}

	booking.ID = f.id()
	booking.CreatedAt = testNow
	stored := *booking
	f.bookings[stored.ID] = &stored
	return nil
}

func (f *fakeStore) GetBookingByID(id int64) (*domain.ShiftBooking, error) {
	booking, ok := f.bookings[id]
	if !ok || booking.DeletedAt != nil {
		return nil, sql.ErrNoRows
	}
	b := *booking
	return &b, nil
}

func (f *fakeStore) GetUserUpcomingBookings(userID int64, week, year, limit, offset int) ([]*domain.BookingDetails, int, error) {
	var details []*domain.BookingDetails
	for _, b := range f.bookings {
		if b.DeletedAt != nil || b.UserID != userID {
			continue
		}
		if b.Year < year || (b.Year == year && b.Week < week) {
			continue
		}
		d, err := f.bookingDetails(b, false)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	sortBookingDetails(details)
	return window(details, limit, offset), len(details), nil
}

func (f *fakeStore) GetCompanyUpcomingBookings(companyID, excludeUserID int64, week, year, limit, offset int) ([]*domain.BookingDetails, int, error) {
	var details []*domain.BookingDetails
	for _, b := range f.bookings {
		if b.DeletedAt != nil || b.CompanyID != companyID || b.UserID == excludeUserID {
			continue
		}
		if b.Year < year || (b.Year == year && b.Week < week) {
			continue
		}
		d, err := f.bookingDetails(b, true)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	sortBookingDetails(details)
	return window(details, limit, offset), len(details), nil
}

func (f *fakeStore) bookingDetails(b *domain.ShiftBooking, withUser bool) (*domain.BookingDetails, error) {
	demand, err := f.GetDemandByID(b.DemandID)
	if err != nil {
		return nil, err
	}
	d := &domain.BookingDetails{
		ShiftBooking: *b,
		WeekDay:      demand.WeekDay,
		StartTime:    demand.StartTime,
		EndTime:      demand.EndTime,
		TimeFrame:    demand.TimeFrame,
		PeriodName:   demand.PeriodName,
	}
	if withUser {
		user, err := f.GetUserByID(b.UserID)
		if err != nil {
			return nil, err
		}
		d.User = user
	}
	return d, nil
}

func sortBookingDetails(details []*domain.BookingDetails) {
	sort.Slice(details, func(i, j int) bool {
		if details[i].Year != details[j].Year {
			return details[i].Year < details[j].Year
		}
		if details[i].Week != details[j].Week {
			return details[i].Week < details[j].Week
		}
		return details[i].ID < details[j].ID
	})
}

func (f *fakeStore) GetDemandWorkers(demandID int64, week, year int) ([]*domain.BookingWorker, error) {
	workers := make([]*domain.BookingWorker, 0)
	for _, b := range f.bookings {
		if b.DeletedAt != nil || b.DemandID != demandID || b.Week != week || b.Year != year {
			continue
		}
		user, err := f.GetUserByID(b.UserID)
		if err != nil {
			return nil, err
		}
		workers = append(workers, &domain.BookingWorker{
			BookingID: b.ID,
			UserID:    b.UserID,
			Avatar:    user.Avatar,
			FullName:  user.FullName(),
			Email:     user.Email,
			Week:      b.Week,
			Year:      b.Year,
		})
	}
	sort.Slice(workers, func(i, j int) bool { return workers[i].BookingID < workers[j].BookingID })
	return workers, nil
}

func (f *fakeStore) CreateSwap(swap *domain.ShiftSwap) error {
	for _, s := range f.swaps {
		samePair := s.RequesterShiftID == swap.RequesterShiftID && s.ReceiverShiftID == swap.ReceiverShiftID
		reversedPair := s.RequesterShiftID == swap.ReceiverShiftID && s.ReceiverShiftID == swap.RequesterShiftID
		if samePair || reversedPair {
			return domain.ErrSwapExists
		}
	}
	swap.ID = f.id()
	swap.Status = domain.SwapPending
	swap.CreatedAt = testNow
	stored := *swap
	f.swaps[stored.ID] = &stored
	return nil
}

func (f *fakeStore) GetSwapByID(id int64) (*domain.ShiftSwap, error) {
	swap, ok := f.swaps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return f.loadSwap(swap)
}

// loadSwap mirrors the repository join: the original booking rows are loaded
// even after they were soft-deleted by an approved exchange.
func (f *fakeStore) loadSwap(swap *domain.ShiftSwap) (*domain.ShiftSwap, error) {
	s := *swap
	requester, err := f.GetUserByID(s.RequesterID)
	if err != nil {
		return nil, err
	}
	receiver, err := f.GetUserByID(s.ReceiverID)
	if err != nil {
		return nil, err
	}
	requesterShift, ok := f.bookings[s.RequesterShiftID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	receiverShift, ok := f.bookings[s.ReceiverShiftID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	s.Requester = requester
	s.Receiver = receiver
	rs := *requesterShift
	s.RequesterShift = &rs
	cs := *receiverShift
	s.ReceiverShift = &cs
	return &s, nil
}

func (f *fakeStore) GetUserSwaps(userID int64, sent bool, limit, offset int) ([]*domain.ShiftSwap, int, error) {
	var swaps []*domain.ShiftSwap
	for _, swap := range f.swaps {
		if sent && swap.RequesterID != userID {
			continue
		}
		if !sent && swap.ReceiverID != userID {
			continue
		}
		loaded, err := f.loadSwap(swap)
		if err != nil {
			return nil, 0, err
		}
		swaps = append(swaps, loaded)
	}
	sort.Slice(swaps, func(i, j int) bool { return swaps[i].ID > swaps[j].ID })
	return window(swaps, limit, offset), len(swaps), nil
}

func (f *fakeStore) ResolveSwap(swap *domain.ShiftSwap, approve bool) error {
	stored, ok := f.swaps[swap.ID]
	if !ok {
		return sql.ErrNoRows
	}
	if stored.Status != domain.SwapPending {
		return domain.ErrSwapResolved
	}

	status := domain.SwapDenied
	if approve {
		status = domain.SwapApproved
	}
	stored.Status = status

	if approve {
		now := testNow
		requesterShift := f.bookings[swap.RequesterShiftID]
		receiverShift := f.bookings[swap.ReceiverShiftID]
		requesterShift.DeletedAt = &now

		exchanged := &domain.ShiftBooking{
			ID:               f.id(),
			UserID:           swap.RequesterID,
			CompanyID:        swap.CompanyID,
			SchedulePeriodID: receiverShift.SchedulePeriodID,
			DemandID:         receiverShift.DemandID,
			Week:             receiverShift.Week,
			Year:             receiverShift.Year,
			CreatedAt:        now,
		}
		f.bookings[exchanged.ID] = exchanged

		exchanged = &domain.ShiftBooking{
			ID:               f.id(),
			UserID:           swap.ReceiverID,
			CompanyID:        swap.CompanyID,
			SchedulePeriodID: requesterShift.SchedulePeriodID,
			DemandID:         requesterShift.DemandID,
			Week:             requesterShift.Week,
			Year:             requesterShift.Year,
			CreatedAt:        now,
		}
		f.bookings[exchanged.ID] = exchanged
	}

	swap.Status = status
	return nil
}

func (f *fakeStore) CreateTimeOff(request *domain.TimeOff) error {
	request.ID = f.id()
	request.Status = domain.TimeOffPending
	request.CreatedAt = testNow
	stored := *request
	f.timeOff[stored.ID] = &stored
	return nil
}

func (f *fakeStore) GetTimeOffByID(id int64) (*domain.TimeOff, error) {
	request, ok := f.timeOff[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	r := *request
	return &r, nil
}

func (f *fakeStore) GetUserTimeOff(userID int64, limit, offset int) ([]*domain.TimeOff, int, error) {
	var requests []*domain.TimeOff
	for _, request := range f.timeOff {
		if request.UserID != userID {
			continue
		}
		r := *request
		requests = append(requests, &r)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return window(requests, limit, offset), len(requests), nil
}

func (f *fakeStore) GetCompanyTimeOffByStatus(companyID int64, status domain.TimeOffStatus, limit, offset int) ([]*domain.TimeOff, int, error) {
	var requests []*domain.TimeOff
	for _, request := range f.timeOff {
		if request.CompanyID != companyID || request.Status != status {
			continue
		}
		r := *request
		user, err := f.GetUserByID(r.UserID)
		if err != nil {
			return nil, 0, err
		}
		r.User = user
		requests = append(requests, &r)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return window(requests, limit, offset), len(requests), nil
}

func (f *fakeStore) UpdateTimeOff(request *domain.TimeOff) error {
	stored, ok := f.timeOff[request.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Type = request.Type
	stored.Reason = request.Reason
	stored.TimeFrame = request.TimeFrame
	stored.StartDate = request.StartDate
	stored.EndDate = request.EndDate
	return nil
}

func (f *fakeStore) SetTimeOffStatus(id int64, status domain.TimeOffStatus) error {
	stored, ok := f.timeOff[id]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Status = status
	return nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

// fixture wires every engine to one shared fake store, a fixed clock and a
// recording dispatcher. Company 1 has an admin and three employees; company 2
// has one employee for cross-tenant checks.
type fixture struct {
	store      *fakeStore
	dispatcher *recordingDispatcher

	booking  *BookingService
	schedule *ScheduleService
	swap     *SwapService
	timeOff  *TimeOffService

	admin    *domain.User
	alice    *domain.User
	bob      *domain.User
	carol    *domain.User
	outsider *domain.User

	period    *domain.SchedulePeriod
	demandMon int64 // Monday 9:00 AM, capacity 2
	demandTue int64 // Tuesday 1:00 PM, capacity 1
	demandFri int64 // Friday 9:00 AM, capacity 2
}

func newFixture() *fixture {
	store := newFakeStore()
	clock := fixedClock{now: testNow}
	dispatcher := &recordingDispatcher{}

	f := &fixture{
		store:      store,
		dispatcher: dispatcher,
		booking:    NewBookingService(store, store, store, clock),
		schedule:   NewScheduleService(store, store, store, clock),
		swap:       NewSwapService(store, store, store, store, clock, dispatcher),
		timeOff:    NewTimeOffService(store, store, clock, dispatcher),
	}

	f.admin = store.addUser(1, "Grace", "Hopper", domain.UserTypeAdmin)
	f.alice = store.addUser(1, "Alice", "Johnson", domain.UserTypeEmployee)
	f.bob = store.addUser(1, "Bob", "Stone", domain.UserTypeEmployee)
	f.carol = store.addUser(1, "Carol", "Reyes", domain.UserTypeEmployee)
	f.outsider = store.addUser(2, "Dave", "Miller", domain.UserTypeEmployee)

	f.period = &domain.SchedulePeriod{
		CompanyID:  1,
		CreatedBy:  f.admin.ID,
		PeriodName: "Front desk",
		Repeat:     true,
		Demands: []domain.SchedulePeriodDemand{
			{WeekDay: domain.Monday, TimeFrame: "9:00 AM - 5:00 PM", StartTime: "9:00 AM", EndTime: "5:00 PM", WorkerQuantity: 2},
			{WeekDay: domain.Tuesday, TimeFrame: "1:00 PM - 9:00 PM", StartTime: "1:00 PM", EndTime: "9:00 PM", WorkerQuantity: 1},
			{WeekDay: domain.Friday, TimeFrame: "9:00 AM - 5:00 PM", StartTime: "9:00 AM", EndTime: "5:00 PM", WorkerQuantity: 2},
		},
	}
	if err := store.CreateSchedulePeriod(f.period); err != nil {
		panic(err)
	}
	if err := store.SetSchedulePublished(f.period.ID, true); err != nil {
		panic(err)
	}
	f.demandMon = f.period.Demands[0].ID
	f.demandTue = f.period.Demands[1].ID
	f.demandFri = f.period.Demands[2].ID
	f.period.Published = true

	return f
}

// mustBook seeds a booking directly through the guarded store call.
func (f *fixture) mustBook(userID, demandID int64, week, year int) *domain.ShiftBooking {
	demand, err := f.store.GetDemandByID(demandID)
	if err != nil {
		panic(err)
	}
	booking := &domain.ShiftBooking{
		UserID:           userID,
		CompanyID:        1,
		SchedulePeriodID: demand.SchedulePeriodID,
		DemandID:         demandID,
		Week:             week,
		Year:             year,
	}
	if err := f.store.CreateBookingGuarded(booking, demand.WorkerQuantity); err != nil {
		panic(err)
	}
	return booking
}

func (f *fixture) liveBookings(userID, demandID int64, week, year int) []*domain.ShiftBooking {
	var bookings []*domain.ShiftBooking
	for _, b := range f.store.bookings {
		if b.DeletedAt != nil || b.UserID != userID || b.DemandID != demandID {
			continue
		}
		if b.Week != week || b.Year != year {
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings
}

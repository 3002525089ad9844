package service

import (
	"sort"
	"sync"
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"gorm.io/gorm"
)

// In-memory stores backing the service tests. They return
// gorm.ErrRecordNotFound the way the real repositories do.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
	resets map[uint]*models.PasswordResetToken
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID: 1,
		users:  make(map[uint]*models.User),
		resets: make(map[uint]*models.PasswordResetToken),
	}
}

func (f *fakeUserStore) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetActiveByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email && user.IsActive {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) EmailExists(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Update(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) UpdatePassword(userID uint, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserStore) RecordLogin(userID uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLoginAt = &at
	return nil
}

func (f *fakeUserStore) GetByVerificationToken(token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.VerificationToken != "" && user.VerificationToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ConsumeVerificationToken(userID uint, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok || user.VerificationToken != token {
		return false, nil
	}
	user.EmailVerified = true
	user.VerificationToken = ""
	user.VerificationExp = nil
	return true, nil
}

func (f *fakeUserStore) SetVerificationToken(userID uint, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.VerificationToken = token
	user.VerificationExp = &expiresAt
	return nil
}

func (f *fakeUserStore) CreateResetToken(token *models.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	token.ID = uint(len(f.resets) + 1)
	clone := *token
	f.resets[token.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetResetToken(token string) (*models.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, reset := range f.resets {
		if reset.Token == token {
			clone := *reset
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ConsumeResetToken(tokenID uint, userID uint, hashedPassword string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resets[tokenID]
	if !ok || reset.Used {
		return false, nil
	}
	reset.Used = true
	user, ok := f.users[userID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	user.Password = hashedPassword
	return true, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionStore) Create(session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *session
	f.sessions[session.Token] = &clone
	return nil
}

func (f *fakeSessionStore) Get(token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionStore) Delete(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) DeleteForUser(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, token)
		}
	}
	return nil
}

type fakeTierStore struct {
	tiers map[int]*models.Tier
}

func newFakeTierStore() *fakeTierStore {
	store := &fakeTierStore{tiers: make(map[int]*models.Tier)}
	for _, tier := range models.DefaultTiers() {
		clone := tier
		store.tiers[tier.Level] = &clone
	}
	return store
}

func (f *fakeTierStore) GetByLevel(level int) (*models.Tier, error) {
	tier, ok := f.tiers[level]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *tier
	return &clone, nil
}

func (f *fakeTierStore) GetAll() ([]models.Tier, error) {
	levels := make([]int, 0, len(f.tiers))
	for level := range f.tiers {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	out := make([]models.Tier, 0, len(levels))
	for _, level := range levels {
		out = append(out, *f.tiers[level])
	}
	return out, nil
}

type fakeMemorialStore struct {
	mu        sync.Mutex
	memorials map[string]*models.Memorial
	answers   map[string][]models.PersonalityAnswer
	messages  map[string][]models.GuestMessage
}

func newFakeMemorialStore() *fakeMemorialStore {
	return &fakeMemorialStore{
		memorials: make(map[string]*models.Memorial),
		answers:   make(map[string][]models.PersonalityAnswer),
		messages:  make(map[string][]models.GuestMessage),
	}
}

func (f *fakeMemorialStore) Create(memorial *models.Memorial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *memorial
	f.memorials[memorial.ID] = &clone
	return nil
}

func (f *fakeMemorialStore) GetByID(id string) (*models.Memorial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	memorial, ok := f.memorials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *memorial
	return &clone, nil
}

func (f *fakeMemorialStore) GetByURL(url string) (*models.Memorial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, memorial := range f.memorials {
		if memorial.URL == url {
			clone := *memorial
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemorialStore) GetUserMemorials(userID uint) ([]models.Memorial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Memorial
	for _, memorial := range f.memorials {
		if memorial.UserID == userID {
			out = append(out, *memorial)
		}
	}
	return out, nil
}

func (f *fakeMemorialStore) CountByUser(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, memorial := range f.memorials {
		if memorial.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemorialStore) Update(memorial *models.Memorial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.memorials[memorial.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *memorial
	f.memorials[memorial.ID] = &clone
	return nil
}

func (f *fakeMemorialStore) UpdateAILetter(id string, letter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	memorial, ok := f.memorials[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	memorial.AILetter = letter
	return nil
}

func (f *fakeMemorialStore) UpdatePersonality(id string, personalityType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	memorial, ok := f.memorials[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	memorial.PersonalityType = personalityType
	return nil
}

func (f *fakeMemorialStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.memorials, id)
	return nil
}

func (f *fakeMemorialStore) SaveAnswers(answers []models.PersonalityAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(answers) == 0 {
		return nil
	}
	memorialID := answers[0].MemorialID
	f.answers[memorialID] = append([]models.PersonalityAnswer(nil), answers...)
	return nil
}

func (f *fakeMemorialStore) GetAnswers(memorialID string) ([]models.PersonalityAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PersonalityAnswer(nil), f.answers[memorialID]...), nil
}

func (f *fakeMemorialStore) SaveMessage(message *models.GuestMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.ID = uint(len(f.messages[message.MemorialID]) + 1)
	f.messages[message.MemorialID] = append(f.messages[message.MemorialID], *message)
	return nil
}

func (f *fakeMemorialStore) GetMessages(memorialID string) ([]models.GuestMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.GuestMessage(nil), f.messages[memorialID]...), nil
}

type fakePhotoStore struct {
	mu     sync.Mutex
	nextID uint
	photos map[uint]*models.Photos
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{
		nextID: 1,
		photos: make(map[uint]*models.Photos),
	}
}

func (f *fakePhotoStore) Create(photo *models.Photos) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	photo.ID = f.nextID
	f.nextID++
	clone := *photo
	f.photos[photo.ID] = &clone
	return nil
}

func (f *fakePhotoStore) GetByID(id uint) (*models.Photos, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	photo, ok := f.photos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *photo
	return &clone, nil
}

func (f *fakePhotoStore) GetByMemorialID(memorialID string) ([]models.Photos, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Photos
	for _, photo := range f.photos {
		if photo.MemorialID == memorialID {
			out = append(out, *photo)
		}
	}
	return out, nil
}

func (f *fakePhotoStore) CountByMemorialID(memorialID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, photo := range f.photos {
		if photo.MemorialID == memorialID {
			count++
		}
	}
	return count, nil
}

func (f *fakePhotoStore) CountByUser(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, photo := range f.photos {
		if photo.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakePhotoStore) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.photos, id)
	return nil
}

// fakeOrderStore mirrors the real repository's transition semantics: paid
// completion upgrades the user's tier and appends exactly one ledger row.
type fakeOrderStore struct {
	mu     sync.Mutex
	users  *fakeUserStore
	orders map[string]*models.PaymentOrder
	ledger []models.PaymentLedger
}

func newFakeOrderStore(users *fakeUserStore) *fakeOrderStore {
	return &fakeOrderStore{
		users:  users,
		orders: make(map[string]*models.PaymentOrder),
	}
}

func (f *fakeOrderStore) Create(order *models.PaymentOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = uint(len(f.orders) + 1)
	clone := *order
	f.orders[order.OrderNo] = &clone
	return nil
}

func (f *fakeOrderStore) GetByOrderNo(orderNo string) (*models.PaymentOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderNo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderStore) GetUserOrders(userID uint) ([]models.PaymentOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentOrder
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) CompletePending(orderNo string, platformRef string, paidAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderNo]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if order.Status != models.OrderStatusPending {
		return false, nil
	}
	order.Status = models.OrderStatusPaid
	order.PlatformRef = platformRef
	order.PaidAt = &paidAt

	f.users.mu.Lock()
	user := f.users.users[order.UserID]
	tierBefore := user.TierLevel
	if user.TierLevel < order.TierTarget {
		user.TierLevel = order.TierTarget
	}
	tierAfter := user.TierLevel
	f.users.mu.Unlock()

	f.ledger = append(f.ledger, models.PaymentLedger{
		OrderNo:    orderNo,
		UserID:     order.UserID,
		Amount:     order.Amount,
		TierBefore: tierBefore,
		TierAfter:  tierAfter,
	})
	return true, nil
}

func (f *fakeOrderStore) TransitionPending(orderNo string, status models.OrderStatus, platformRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderNo]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if order.Status != models.OrderStatusPending {
		return false, nil
	}
	order.Status = status
	if platformRef != "" {
		order.PlatformRef = platformRef
	}
	return true, nil
}

func (f *fakeOrderStore) RefundPaid(orderNo string, platformRef string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderNo]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if order.Status != models.OrderStatusPaid {
		return false, nil
	}
	order.Status = models.OrderStatusRefunded
	if platformRef != "" {
		order.PlatformRef = platformRef
	}
	return true, nil
}

func (f *fakeOrderStore) GetLedgerEntries(userID uint) ([]models.PaymentLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentLedger
	for _, entry := range f.ledger {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// fakeMailer records outbound mail instead of sending it.
type fakeMailer struct {
	mu            sync.Mutex
	verifications []string
	resets        []string
	memorials     []string
}

func (f *fakeMailer) SendVerificationEmail(email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications = append(f.verifications, email)
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(email, resetToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, email)
	return nil
}

func (f *fakeMailer) SendMemorialCreatedEmail(email, petName, memorialURL, aiLetter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memorials = append(f.memorials, email)
	return nil
}

type fakeCheckout struct {
	fail bool
}

func (f *fakeCheckout) CreateCheckoutSession(userEmail, orderNo, planName, planDescription, currency string, amount float64) (*CheckoutResult, error) {
	if f.fail {
		return nil, errGatewayDown
	}
	return &CheckoutResult{
		SessionID: "cs_test_" + orderNo,
		URL:       "https://checkout.example.com/" + orderNo,
	}, nil
}

var errGatewayDown = errGateway{}

type errGateway struct{}

func (errGateway) Error() string { return "gateway unavailable" }

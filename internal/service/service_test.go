package service

import (
	"context"
	"errors"
	"testing"

	ledgererrors "ticketchain/internal/errors"
	"ticketchain/internal/ledger"
	"ticketchain/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin = "0xdeployer"
	buyer = "0xbuyer"
)

type fakeOccasionArchive struct {
	created []models.Occasion
	err     error
}

func (f *fakeOccasionArchive) Create(ctx context.Context, occ models.Occasion) error {
	f.created = append(f.created, occ)
	return f.err
}

type fakeSaleArchive struct {
	sales       []models.SeatSale
	withdrawals []models.Withdrawal
	err         error
}

func (f *fakeSaleArchive) RecordSale(ctx context.Context, sale models.SeatSale) error {
	f.sales = append(f.sales, sale)
	return f.err
}

func (f *fakeSaleArchive) RecordWithdrawal(ctx context.Context, w models.Withdrawal) error {
	f.withdrawals = append(f.withdrawals, w)
	return f.err
}

type fakePublisher struct {
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	f.subjects = append(f.subjects, subject)
	return f.err
}

type fakeSearch struct {
	indexed []models.Occasion
	results []int64
	err     error
}

func (f *fakeSearch) IndexOccasion(ctx context.Context, occ models.Occasion) error {
	f.indexed = append(f.indexed, occ)
	return f.err
}

func (f *fakeSearch) Search(ctx context.Context, query string, size int) ([]int64, error) {
	return f.results, f.err
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) InvalidateOccasionsList(ctx context.Context) error {
	f.invalidations++
	return nil
}

type fakeSink struct {
	recipient string
	amount    int64
	err       error
}

func (f *fakeSink) Transfer(ctx context.Context, recipient string, amount int64) error {
	f.recipient = recipient
	f.amount = amount
	return f.err
}

func newTestLedger() *ledger.Ledger {
	return ledger.New(ledger.Config{Admin: admin, Name: "TicketChain", Symbol: "TC"})
}

func createRequest() *models.CreateOccasionRequest {
	return &models.CreateOccasionRequest{
		Name:       "Kairat Nurtas",
		Cost:       1,
		MaxTickets: 100,
		Date:       "Nov 17",
		Time:       "20:00",
		Location:   "Astana, Kazakhstan",
	}
}

func TestOccasionServiceCreateFansOut(t *testing.T) {
	l := newTestLedger()
	archive := &fakeOccasionArchive{}
	search := &fakeSearch{}
	cache := &fakeCache{}
	pub := &fakePublisher{}
	svc := NewOccasionService(l, Collaborators{
		Occasions: archive,
		Search:    search,
		Cache:     cache,
		Publisher: pub,
	})

	resp, err := svc.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	require.Len(t, archive.created, 1)
	assert.Equal(t, "Kairat Nurtas", archive.created[0].Name)
	require.Len(t, search.indexed, 1)
	assert.Equal(t, 1, cache.invalidations)
	assert.Equal(t, []string{models.EventOccasionListed}, pub.subjects)
}

func TestOccasionServiceCreateUnauthorized(t *testing.T) {
	l := newTestLedger()
	archive := &fakeOccasionArchive{}
	pub := &fakePublisher{}
	svc := NewOccasionService(l, Collaborators{Occasions: archive, Publisher: pub})

	_, err := svc.Create(context.Background(), buyer, createRequest())
	assert.ErrorIs(t, err, ledgererrors.ErrUnauthorized)

	// A rejected listing reaches no collaborator.
	assert.Empty(t, archive.created)
	assert.Empty(t, pub.subjects)
	assert.Zero(t, l.TotalOccasions())
}

func TestOccasionServiceCreateArchiveFailureDoesNotFailCommit(t *testing.T) {
	l := newTestLedger()
	archive := &fakeOccasionArchive{err: errors.New("db down")}
	svc := NewOccasionService(l, Collaborators{Occasions: archive})

	resp, err := svc.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(1), l.TotalOccasions())
}

func TestOccasionServiceCreateWithoutCollaborators(t *testing.T) {
	svc := NewOccasionService(newTestLedger(), Collaborators{})

	resp, err := svc.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestOccasionServiceList(t *testing.T) {
	l := newTestLedger()
	svc := NewOccasionService(l, Collaborators{})

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), admin, createRequest())
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[2].ID)
}

func TestOccasionServiceListWithQueryUsesSearch(t *testing.T) {
	l := newTestLedger()
	// Index claims ids 2 and 7; the ledger only knows 1 and 2, so the stale
	// hit is skipped.
	search := &fakeSearch{results: []int64{2, 7}}
	svc := NewOccasionService(l, Collaborators{Search: search})

	_, err := svc.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "kairat")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)
}

func TestTicketServiceMint(t *testing.T) {
	l := newTestLedger()
	sales := &fakeSaleArchive{}
	pub := &fakePublisher{}
	occasions := NewOccasionService(l, Collaborators{})
	tickets := NewTicketService(l, Collaborators{Sales: sales, Publisher: pub})

	created, err := occasions.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)

	resp, err := tickets.Mint(context.Background(), buyer, created.ID, &models.MintRequest{SeatNumber: 60, Payment: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TicketSerial)
	assert.Equal(t, int64(60), resp.SeatNumber)

	require.Len(t, sales.sales, 1)
	assert.Equal(t, buyer, sales.sales[0].Buyer)
	assert.Equal(t, int64(60), sales.sales[0].SeatNumber)
	assert.Equal(t, []string{models.EventTicketMinted}, pub.subjects)
}

func TestTicketServiceMintRejectedReachesNoCollaborator(t *testing.T) {
	l := newTestLedger()
	sales := &fakeSaleArchive{}
	pub := &fakePublisher{}
	occasions := NewOccasionService(l, Collaborators{})
	tickets := NewTicketService(l, Collaborators{Sales: sales, Publisher: pub})

	created, err := occasions.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)

	_, err = tickets.Mint(context.Background(), buyer, created.ID, &models.MintRequest{SeatNumber: 60, Payment: 5})
	assert.ErrorIs(t, err, ledgererrors.ErrIncorrectPayment)
	assert.Empty(t, sales.sales)
	assert.Empty(t, pub.subjects)
}

func TestTicketServiceQueries(t *testing.T) {
	l := newTestLedger()
	occasions := NewOccasionService(l, Collaborators{})
	tickets := NewTicketService(l, Collaborators{})

	created, err := occasions.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	_, err = tickets.Mint(context.Background(), buyer, created.ID, &models.MintRequest{SeatNumber: 60, Payment: 1})
	require.NoError(t, err)

	owner, err := tickets.SeatTaken(context.Background(), created.ID, 60)
	require.NoError(t, err)
	assert.True(t, owner.Taken)
	assert.Equal(t, buyer, owner.Buyer)

	free, err := tickets.SeatTaken(context.Background(), created.ID, 61)
	require.NoError(t, err)
	assert.False(t, free.Taken)
	assert.Empty(t, free.Buyer)

	roster, err := tickets.SeatsTaken(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{60}, roster.Seats)

	bought, err := tickets.HasBought(context.Background(), created.ID, buyer)
	require.NoError(t, err)
	assert.True(t, bought.HasBought)

	_, err = tickets.SeatsTaken(context.Background(), 99)
	assert.ErrorIs(t, err, ledgererrors.ErrNotFound)
}

func TestWithdrawalServiceWithdraw(t *testing.T) {
	l := newTestLedger()
	sales := &fakeSaleArchive{}
	pub := &fakePublisher{}
	sink := &fakeSink{}
	occasions := NewOccasionService(l, Collaborators{})
	tickets := NewTicketService(l, Collaborators{})
	withdrawals := NewWithdrawalService(l, Collaborators{Sales: sales, Publisher: pub}, sink)

	created, err := occasions.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	_, err = tickets.Mint(context.Background(), buyer, created.ID, &models.MintRequest{SeatNumber: 50, Payment: 1})
	require.NoError(t, err)

	resp, err := withdrawals.Withdraw(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Amount)
	assert.Equal(t, admin, resp.Recipient)
	assert.NotEmpty(t, resp.Reference)

	assert.Equal(t, admin, sink.recipient)
	assert.Equal(t, int64(1), sink.amount)
	assert.Zero(t, l.Balance())

	require.Len(t, sales.withdrawals, 1)
	assert.Equal(t, resp.Reference, sales.withdrawals[0].Reference)
	assert.Equal(t, []string{models.EventFundsWithdrawn}, pub.subjects)
}

func TestWithdrawalServiceTransferFailure(t *testing.T) {
	l := newTestLedger()
	sales := &fakeSaleArchive{}
	sink := &fakeSink{err: errors.New("gateway refused")}
	occasions := NewOccasionService(l, Collaborators{})
	tickets := NewTicketService(l, Collaborators{})
	withdrawals := NewWithdrawalService(l, Collaborators{Sales: sales}, sink)

	created, err := occasions.Create(context.Background(), admin, createRequest())
	require.NoError(t, err)
	_, err = tickets.Mint(context.Background(), buyer, created.ID, &models.MintRequest{SeatNumber: 50, Payment: 1})
	require.NoError(t, err)

	_, err = withdrawals.Withdraw(context.Background(), admin)
	assert.ErrorIs(t, err, ledgererrors.ErrTransferFailed)
	assert.Equal(t, int64(1), l.Balance())
	assert.Empty(t, sales.withdrawals)
}

func TestWithdrawalServiceBalance(t *testing.T) {
	l := newTestLedger()
	withdrawals := NewWithdrawalService(l, Collaborators{}, &fakeSink{})

	resp, err := withdrawals.Balance(context.Background(), admin)
	require.NoError(t, err)
	assert.Zero(t, resp.Balance)

	_, err = withdrawals.Balance(context.Background(), buyer)
	assert.ErrorIs(t, err, ledgererrors.ErrUnauthorized)
}

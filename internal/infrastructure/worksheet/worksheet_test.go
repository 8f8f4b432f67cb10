package worksheet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/infrastructure/db/sqlite"
	"github.com/studiodesk/schedule-system/internal/infrastructure/queue"
)

type fixture struct {
	opener    *sqlite.Opener
	users     *UserRepository
	schedules *ScheduleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	writes := queue.NewDispatcher(2, zerolog.Nop())
	writes.Start(ctx)

	opener := sqlite.NewOpener(t.TempDir(), true)
	t.Cleanup(func() { _ = opener.Close(context.Background()) })

	return &fixture{
		opener:    opener,
		users:     NewUserRepository(opener, "studio_db", writes, zerolog.Nop()),
		schedules: NewScheduleRepository(opener, "studio_db", writes, zerolog.Nop()),
	}
}

func sampleSchedule(id, date string) *domain.Schedule {
	return &domain.Schedule{
		ID:            id,
		Date:          date,
		Time:          "10:00",
		Type:          domain.TypeRehearsal,
		Couple:        domain.Couple{GroomName: "Han", GroomPhone: "010-1", BrideName: "Oh", BridePhone: "010-2"},
		Venue:         "Grand Hall",
		Product:       "Premium",
		Price:         1250000.5,
		PaymentStatus: domain.PaymentUnsettled,
		Manager:       "Kim",
		Memos:         []domain.Memo{},
	}
}

func TestUserRepository_CreateFindList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	signed := time.Date(2026, 1, 5, 14, 30, 0, 0, time.Local)
	u := &domain.User{ID: "kim", PasswordHash: "$2a$10$hash", Name: "Kim", Role: domain.RoleShooting, SignupDate: signed}
	if err := f.users.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := f.users.Create(ctx, &domain.User{ID: "kim", Name: "Other"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	got, err := f.users.FindByID(ctx, "kim")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Name != "Kim" || got.Approved || got.PasswordHash != u.PasswordHash || !got.SignupDate.Equal(signed) {
		t.Fatalf("unexpected user: %+v", got)
	}

	all, _ := f.users.List(ctx)
	if len(all) != 1 {
		t.Fatalf("duplicate signup must not append, got %d users", len(all))
	}

	if _, err := f.users.FindByID(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_ConcurrentSignupsSameID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f.users.Create(ctx, &domain.User{ID: "dup", Name: "Dup"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one successful signup, got %d", created)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_ = f.users.Create(ctx, &domain.User{ID: "lee", PasswordHash: "plain", Name: "Lee", Role: domain.RoleEditing})

	if err := f.users.UpdatePassword(ctx, "lee", "hashed"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	got, _ := f.users.FindByID(ctx, "lee")
	if got.PasswordHash != "hashed" || got.Name != "Lee" {
		t.Fatalf("unexpected user after password update: %+v", got)
	}
	if err := f.users.UpdatePassword(ctx, "ghost", "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_RewriteKeepsExtraColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbl, err := f.opener.Open(ctx, "studio_db", WorksheetUsers, append(append([]string{}, UserHeader...), "note"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = tbl.AppendRows(ctx, []domain.Record{
		{"id": "owner", "password": "h1", "name": "Owner", "role": "Master", "approved": "TRUE", "note": "founder"},
		{"id": "kim", "password": "h2", "name": "Kim", "role": "Shooting", "approved": "FALSE", "note": "new"},
	})

	err = f.users.Rewrite(ctx, func(current []domain.User) ([]domain.User, error) {
		current[1].Approved = true
		return current, nil
	})
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	rows, _ := tbl.ReadAll(ctx)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Record["approved"] != "TRUE" || rows[1].Record["password"] != "h2" || rows[1].Record["note"] != "new" {
		t.Fatalf("unexpected row after rewrite: %v", rows[1].Record)
	}
	if rows[0].Record["note"] != "founder" {
		t.Fatalf("extra column lost: %v", rows[0].Record)
	}
}

func TestUserRepository_RewriteAbortsOnMutateError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_ = f.users.Create(ctx, &domain.User{ID: "kim", Name: "Kim", Role: domain.RoleShooting})

	boom := errors.New("boom")
	if err := f.users.Rewrite(ctx, func([]domain.User) ([]domain.User, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	all, _ := f.users.List(ctx)
	if len(all) != 1 {
		t.Fatalf("aborted rewrite changed the roster: %+v", all)
	}
}

func TestScheduleRepository_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := sampleSchedule("s-1", "2026-01-29")
	s.Memos = domain.PrependMemo(nil, "2026-01-20 09:30", "Kim", "call venue")
	s.USBDelivered = true
	if err := f.schedules.Create(ctx, s); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := f.schedules.FindByID(ctx, "s-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Price != 1250000.5 || !got.USBDelivered || got.AlbumDone || got.Couple.BridePhone != "010-2" {
		t.Fatalf("unexpected schedule: %+v", got)
	}
	if len(got.Memos) != 1 || got.Memos[0].Writer != "Kim" {
		t.Fatalf("memos not round-tripped: %+v", got.Memos)
	}
	if got.Version != s.Version {
		t.Fatalf("expected version %d, got %d", s.Version, got.Version)
	}
}

func TestScheduleRepository_UpdateConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_ = f.schedules.Create(ctx, sampleSchedule("s-1", "2026-01-29"))

	a, _ := f.schedules.FindByID(ctx, "s-1")
	b, _ := f.schedules.FindByID(ctx, "s-1")

	a.Venue = "Garden"
	if err := f.schedules.Update(ctx, a); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	b.Venue = "Rooftop"
	if err := f.schedules.Update(ctx, b); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	got, _ := f.schedules.FindByID(ctx, "s-1")
	if got.Venue != "Garden" || got.Version != a.Version {
		t.Fatalf("lost update: %+v", got)
	}

	missing := sampleSchedule("nope", "2026-01-29")
	if err := f.schedules.Update(ctx, missing); !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestScheduleRepository_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_ = f.schedules.Create(ctx, sampleSchedule("s-1", "2026-01-29"))
	_ = f.schedules.Create(ctx, sampleSchedule("s-2", "2026-01-30"))

	if err := f.schedules.Delete(ctx, "s-1", 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, _ := f.schedules.List(ctx)
	if len(all) != 1 || all[0].ID != "s-2" {
		t.Fatalf("unexpected schedules after delete: %+v", all)
	}
	if err := f.schedules.Delete(ctx, "s-1", 1); !errors.Is(err, domain.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestScheduleRepository_MalformedCells(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbl, _ := f.opener.Open(ctx, "studio_db", WorksheetSchedules, ScheduleHeader)
	_ = tbl.AppendRow(ctx, domain.Record{
		"id": "legacy", "date": "2026-02-02", "type": "ceremony",
		"price": "1,500,000", "memoList": "free text, not json",
	})

	got, err := f.schedules.FindByID(ctx, "legacy")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Memos == nil || len(got.Memos) != 0 {
		t.Fatalf("malformed memo cell should read as an empty list, got %#v", got.Memos)
	}
	if got.Price != 1500000 {
		t.Fatalf("expected thousands separators to be ignored, got %v", got.Price)
	}
	if got.PaymentStatus != domain.PaymentUnsettled {
		t.Fatalf("expected default payment status, got %q", got.PaymentStatus)
	}
}

func TestScheduleRepository_UpdateKeepsExtraColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbl, err := f.opener.Open(ctx, "studio_db", WorksheetSchedules, append(append([]string{}, ScheduleHeader...), "notes"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = tbl.AppendRow(ctx, domain.Record{
		"id": "s-1", "date": "2026-01-29", "time": "10:00", "type": "rehearsal", "notes": "bring drone",
	})

	s, err := f.schedules.FindByID(ctx, "s-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	s.Memos = domain.PrependMemo(s.Memos, "2026-01-20 09:30", "Kim", "call venue")
	if err := f.schedules.Update(ctx, s); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	rows, _ := tbl.ReadAll(ctx)
	if rows[0].Record["notes"] != "bring drone" {
		t.Fatalf("extra column lost on update: %v", rows[0].Record)
	}
	got, _ := f.schedules.FindByID(ctx, "s-1")
	if len(got.Memos) != 1 || got.Version != s.Version {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestUserRepository_RewriteKeepsSignupDateCell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbl, _ := f.opener.Open(ctx, "studio_db", WorksheetUsers, UserHeader)
	_ = tbl.AppendRows(ctx, []domain.Record{
		{"id": "a", "password": "h1", "name": "A", "role": "Shooting", "approved": "FALSE", "signup_date": "2026-01-29 10:00:00.123456"},
		{"id": "b", "password": "h2", "name": "B", "role": "Editing", "approved": "FALSE", "signup_date": "2026/01/29"},
	})

	err := f.users.Rewrite(ctx, func(current []domain.User) ([]domain.User, error) {
		current[0].Approved = true
		return current, nil
	})
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	rows, _ := tbl.ReadAll(ctx)
	if got := rows[0].Record["signup_date"]; got != "2026-01-29 10:00:00.123456" {
		t.Fatalf("fractional signup date rewritten: %q", got)
	}
	if got := rows[1].Record["signup_date"]; got != "2026/01/29" {
		t.Fatalf("unparsable signup date rewritten: %q", got)
	}
	if rows[0].Record["approved"] != "TRUE" {
		t.Fatalf("edit not applied: %v", rows[0].Record)
	}
}

func TestUserRepository_FindsPaddedLegacyID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbl, _ := f.opener.Open(ctx, "studio_db", WorksheetUsers, UserHeader)
	_ = tbl.AppendRow(ctx, domain.Record{"id": " kim", "password": "pw", "name": "Kim", "role": "Shooting", "approved": "TRUE"})

	got, err := f.users.FindByID(ctx, "kim")
	if err != nil || got.ID != "kim" {
		t.Fatalf("expected padded id to match, got %+v, %v", got, err)
	}
	if err := f.users.UpdatePassword(ctx, "kim", "hashed"); err != nil {
		t.Fatalf("UpdatePassword on padded id failed: %v", err)
	}
	if err := f.users.Create(ctx, &domain.User{ID: "kim", Name: "Other"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for padded duplicate, got %v", err)
	}
}

func TestScheduleRepository_LegacyPhoneColumn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tbl, _ := f.opener.Open(ctx, "studio_db", WorksheetSchedules, []string{"id", "date", "time", "type", "groomName", "brideName", "phone"})
	_ = tbl.AppendRow(ctx, domain.Record{"id": "old", "date": "2025-11-02", "type": "ceremony", "groomName": "Han", "phone": "010-7777-8888"})

	got, err := f.schedules.FindByID(ctx, "old")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Couple.GroomPhone != "010-7777-8888" {
		t.Fatalf("expected phone column as groom phone, got %+v", got.Couple)
	}
}

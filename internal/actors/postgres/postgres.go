package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/ports"
)

// PostgresDB is a postgres adapter for persistence.
type PostgresDB struct {
	db      *pg.DB
	nowFunc func() time.Time
}

// PostgresDBArgs are the mandatory arguments for the creation of a PostgresDB.
type PostgresDBArgs struct {
	// DB is a postgres database handle
	DB *pg.DB
}

// PostgresDBOptArgs are the optional arguments for building a PostgresDB.
type PostgresDBOptArgs = func(*PostgresDB)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) PostgresDBOptArgs {
	return func(p *PostgresDB) {
		p.nowFunc = nowFunc
	}
}

// NewPostgresDB creates a new PostgresDB.
func NewPostgresDB(args PostgresDBArgs, optArgs ...PostgresDBOptArgs) (*PostgresDB, error) {
	pgDB := &PostgresDB{db: args.DB, nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(pgDB)
	}
	return pgDB, nil
}

// SaveBrevet will save the brevet in the database.
func (p *PostgresDB) SaveBrevet(ctx context.Context, brevet *model.Brevet) error {
	if brevet == nil {
		return errors.New("nil brevet passed to save method")
	}
	dbBrevet := brevetToDB(brevet)
	if dbBrevet.CreatedAt.IsZero() {
		dbBrevet.CreatedAt = p.nowFunc()
	}
	dbBrevet.UpdatedAt = p.nowFunc()
	if dbBrevet.ID == 0 {
		if _, err := p.db.ModelContext(ctx, dbBrevet).Insert(); err != nil {
			return err
		}
	} else if _, err := p.db.ModelContext(ctx, dbBrevet).WherePK().Update(); err != nil {
		return err
	}
	brevet.ID = dbBrevet.ID
	brevet.CreatedAt = dbBrevet.CreatedAt
	brevet.UpdatedAt = dbBrevet.UpdatedAt
	return nil
}

// SavePopulaire will save the populaire in the database.
func (p *PostgresDB) SavePopulaire(ctx context.Context, populaire *model.Populaire) error {
	if populaire == nil {
		return errors.New("nil populaire passed to save method")
	}
	dbPopulaire := populaireToDB(populaire)
	if dbPopulaire.CreatedAt.IsZero() {
		dbPopulaire.CreatedAt = p.nowFunc()
	}
	dbPopulaire.UpdatedAt = p.nowFunc()
	if dbPopulaire.ID == 0 {
		if _, err := p.db.ModelContext(ctx, dbPopulaire).Insert(); err != nil {
			return err
		}
	} else if _, err := p.db.ModelContext(ctx, dbPopulaire).WherePK().Update(); err != nil {
		return err
	}
	populaire.ID = dbPopulaire.ID
	populaire.CreatedAt = dbPopulaire.CreatedAt
	populaire.UpdatedAt = dbPopulaire.UpdatedAt
	return nil
}

// FindBrevet finds a brevet by region, distance and the half-open start-day
// interval. It returns model.ErrNotFound when no brevet matches.
func (p *PostgresDB) FindBrevet(ctx context.Context, query ports.FindBrevetQuery) (*model.Brevet, error) {
	dbBrevet := new(brevetDB)
	err := p.db.ModelContext(ctx, dbBrevet).
		Where("region = ?", query.Region).
		Where("distance = ?", query.Distance).
		Where("start_time >= ?", query.Day).
		Where("start_time < ?", query.Day.AddDate(0, 0, 1)).
		Select()
	if err == pg.ErrNoRows {
		return nil, model.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return brevetFromDB(dbBrevet), nil
}

// FindPopulaire finds a populaire by its short name. It returns
// model.ErrNotFound when no populaire matches.
func (p *PostgresDB) FindPopulaire(ctx context.Context, shortName string) (*model.Populaire, error) {
	dbPopulaire := new(populaireDB)
	err := p.db.ModelContext(ctx, dbPopulaire).
		Where("short_name = ?", shortName).
		Select()
	if err == pg.ErrNoRows {
		return nil, model.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return populaireFromDB(dbPopulaire), nil
}

// ListBrevets lists brevets matching the parameters in input.
func (p *PostgresDB) ListBrevets(ctx context.Context, query ports.ListEventsQuery) ([]model.Brevet, error) {
	var dbBrevets []brevetDB
	q := p.db.ModelContext(ctx, &dbBrevets).Order("start_time ASC")
	if !query.StartAfter.IsZero() {
		q = q.Where("start_time > ?", query.StartAfter)
	}
	if !query.StartBefore.IsZero() {
		q = q.Where("start_time < ?", query.StartBefore)
	}
	if err := q.Select(); err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	brevets := make([]model.Brevet, len(dbBrevets))
	for i := range dbBrevets {
		brevets[i] = *brevetFromDB(&dbBrevets[i])
	}
	return brevets, nil
}

// ListPopulaires lists populaires matching the parameters in input.
func (p *PostgresDB) ListPopulaires(ctx context.Context, query ports.ListEventsQuery) ([]model.Populaire, error) {
	var dbPopulaires []populaireDB
	q := p.db.ModelContext(ctx, &dbPopulaires).Order("start_time ASC")
	if !query.StartAfter.IsZero() {
		q = q.Where("start_time > ?", query.StartAfter)
	}
	if !query.StartBefore.IsZero() {
		q = q.Where("start_time < ?", query.StartBefore)
	}
	if err := q.Select(); err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	populaires := make([]model.Populaire, len(dbPopulaires))
	for i := range dbPopulaires {
		populaires[i] = *populaireFromDB(&dbPopulaires[i])
	}
	return populaires, nil
}

// DeleteBrevet removes the brevet and its riders in one transaction.
func (p *PostgresDB) DeleteBrevet(ctx context.Context, id int64) error {
	return p.deleteEvent(ctx, model.KindBrevet, id, (*brevetDB)(nil))
}

// DeletePopulaire removes the populaire and its riders in one transaction.
func (p *PostgresDB) DeletePopulaire(ctx context.Context, id int64) error {
	return p.deleteEvent(ctx, model.KindPopulaire, id, (*populaireDB)(nil))
}

func (p *PostgresDB) deleteEvent(ctx context.Context, kind model.EventKind, id int64, eventModel interface{}) error {
	conn := p.db.Conn()
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ModelContext(ctx, (*riderDB)(nil)).
		Where("event_kind = ?", kind).
		Where("event_id = ?", id).
		Delete(); err != nil {
		return err
	}
	if _, err := tx.ModelContext(ctx, eventModel).Where("id = ?", id).Delete(); err != nil {
		return err
	}
	return tx.Commit()
}

// SetRosterDoc records the external roster document handle for an event.
func (p *PostgresDB) SetRosterDoc(ctx context.Context, kind model.EventKind, eventID int64, docID string) error {
	var eventModel interface{}
	switch kind {
	case model.KindBrevet:
		eventModel = (*brevetDB)(nil)
	case model.KindPopulaire:
		eventModel = (*populaireDB)(nil)
	default:
		return errors.New("unknown event kind")
	}
	res, err := p.db.ModelContext(ctx, eventModel).
		Set("roster_doc_id = ?", docID).
		Set("updated_at = ?", p.nowFunc()).
		Where("id = ?", eventID).
		Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() < 1 {
		return model.ErrNotFound
	}
	return nil
}

// FindRider finds a rider by its exact admission key. It returns
// model.ErrNotFound when no rider matches. Matching is raw equality on the
// stored columns, not normalized equality.
func (p *PostgresDB) FindRider(ctx context.Context, key ports.RiderKey) (*model.Rider, error) {
	dbRider := new(riderDB)
	err := p.db.ModelContext(ctx, dbRider).
		Where("event_kind = ?", key.EventKind).
		Where("event_id = ?", key.EventID).
		Where("email = ?", key.Email).
		Where("first_name = ?", key.FirstName).
		Where("last_name = ?", key.LastName).
		Select()
	if err == pg.ErrNoRows {
		return nil, model.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return riderFromDB(dbRider), nil
}

// ListRiders lists all riders of an event ordered by lowercase last name.
func (p *PostgresDB) ListRiders(ctx context.Context, kind model.EventKind, eventID int64) ([]model.Rider, error) {
	var dbRiders []riderDB
	err := p.db.ModelContext(ctx, &dbRiders).
		Where("event_kind = ?", kind).
		Where("event_id = ?", eventID).
		Order("lowercase_last_name ASC").
		Order("id ASC").
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	riders := make([]model.Rider, len(dbRiders))
	for i := range dbRiders {
		riders[i] = *riderFromDB(&dbRiders[i])
	}
	return riders, nil
}

// SaveRider will save the rider in the database. The riders_admission_key
// unique index enforces the per-event (email, first name, last name) rule;
// a collision returns model.ErrAlreadyRegistered.
func (p *PostgresDB) SaveRider(ctx context.Context, rider *model.Rider) error {
	if rider == nil {
		return errors.New("nil rider passed to save method")
	}
	dbRider := riderToDB(rider)
	if dbRider.CreatedAt.IsZero() {
		dbRider.CreatedAt = p.nowFunc()
	}
	if _, err := p.db.ModelContext(ctx, dbRider).Insert(); err != nil {
		var pgErr pg.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return model.ErrAlreadyRegistered
		}
		return err
	}
	rider.ID = dbRider.ID
	rider.CreatedAt = dbRider.CreatedAt
	return nil
}

// UpdateRiderMemberStatus caches a resolved membership status on a rider.
func (p *PostgresDB) UpdateRiderMemberStatus(ctx context.Context, riderID int64, isMember bool) error {
	res, err := p.db.ModelContext(ctx, (*riderDB)(nil)).
		Set("member_status = ?", isMember).
		Where("id = ?", riderID).
		Update()
	if err != nil {
		return err
	}
	if res.RowsAffected() < 1 {
		return model.ErrNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// collectionWorksheets holds one header document per worksheet of a store.
const collectionWorksheets = "_worksheets"

var _ ports.TableOpener = (*Opener)(nil)

// Opener maps a store to a database and a worksheet to a collection.
type Opener struct {
	client     *mongo.Client
	autoCreate bool
}

func NewOpener(client *mongo.Client, autoCreate bool) *Opener {
	return &Opener{client: client, autoCreate: autoCreate}
}

type worksheetDoc struct {
	Name   string   `bson:"_id"`
	Header []string `bson:"header"`
}

type rowDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Position int64              `bson:"position"`
	Version  int64              `bson:"version"`
	Fields   map[string]string  `bson:"fields"`
}

func (o *Opener) Open(ctx context.Context, store, worksheet string, defaultHeader []string) (ports.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if !o.autoCreate {
		names, err := o.client.ListDatabaseNames(ctx, bson.M{"name": store})
		if err != nil {
			return nil, unavailable("list databases", err)
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: store %q does not exist", domain.ErrStoreUnavailable, store)
		}
	}

	db := o.client.Database(store)
	meta := db.Collection(collectionWorksheets)

	var ws worksheetDoc
	err := meta.FindOne(ctx, bson.M{"_id": worksheet}).Decode(&ws)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		if len(defaultHeader) == 0 {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrWorksheetNotFound, store, worksheet)
		}
		_, err := meta.InsertOne(ctx, worksheetDoc{Name: worksheet, Header: defaultHeader})
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return nil, unavailable("create worksheet", err)
		}
	case err != nil:
		return nil, unavailable("open worksheet", err)
	}

	t := &table{meta: meta, col: db.Collection(worksheet), name: worksheet}
	if err := t.ensureIndexes(ctx); err != nil {
		return nil, unavailable("ensure indexes", err)
	}
	return t, nil
}

func (o *Opener) Ping(ctx context.Context) error {
	if err := o.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (o *Opener) Close(ctx context.Context) error {
	return o.client.Disconnect(ctx)
}

type table struct {
	meta *mongo.Collection
	col  *mongo.Collection
	name string
}

func (t *table) Name() string { return t.name }

func (t *table) ensureIndexes(ctx context.Context) error {
	_, err := t.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "position", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (t *table) Header(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ws worksheetDoc
	if err := t.meta.FindOne(ctx, bson.M{"_id": t.name}).Decode(&ws); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWorksheetNotFound, t.name)
		}
		return nil, unavailable("read header", err)
	}
	return ws.Header, nil
}

func (t *table) ReadAll(ctx context.Context) ([]domain.Row, error) {
	header, err := t.Header(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := t.rows(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Row, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Row{Version: d.Version, Record: domain.Record(d.Fields).Project(header)})
	}
	return out, nil
}

func (t *table) rows(ctx context.Context) ([]rowDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := t.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, unavailable("read rows", err)
	}
	var docs []rowDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode rows", err)
	}
	return docs, nil
}

func (t *table) AppendRow(ctx context.Context, rec domain.Record) error {
	return t.AppendRows(ctx, []domain.Record{rec})
}

func (t *table) AppendRows(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	header, err := t.Header(ctx)
	if err != nil {
		return err
	}
	next, err := t.maxOf(ctx, "position", -1)
	if err != nil {
		return err
	}

	docs := make([]any, 0, len(recs))
	for i, rec := range recs {
		docs = append(docs, rowDoc{Position: next + 1 + int64(i), Version: 1, Fields: rec.Project(header)})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := t.col.InsertMany(ctx, docs); err != nil {
		return unavailable("insert rows", err)
	}
	return nil
}

// ReplaceAll is not atomic across the delete and insert. Callers hold the
// worksheet's write serializer for its duration.
func (t *table) ReplaceAll(ctx context.Context, header []string, recs []domain.Record) error {
	maxVersion, err := t.maxOf(ctx, "version", 0)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := t.col.DeleteMany(ctx, bson.M{}); err != nil {
		return unavailable("clear rows", err)
	}
	res, err := t.meta.UpdateOne(ctx, bson.M{"_id": t.name}, bson.M{"$set": bson.M{"header": header}})
	if err != nil {
		return unavailable("write header", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", domain.ErrWorksheetNotFound, t.name)
	}
	if len(recs) == 0 {
		return nil
	}

	docs := make([]any, 0, len(recs))
	for i, rec := range recs {
		docs = append(docs, rowDoc{Position: int64(i), Version: maxVersion + 1, Fields: rec.Project(header)})
	}
	if _, err := t.col.InsertMany(ctx, docs); err != nil {
		return unavailable("insert rows", err)
	}
	return nil
}

func (t *table) UpdateRow(ctx context.Context, keyField, keyValue string, expected int64, rec domain.Record) (int64, error) {
	header, err := t.Header(ctx)
	if err != nil {
		return 0, err
	}
	target, err := t.find(ctx, keyField, keyValue)
	if err != nil {
		return 0, err
	}
	if target.Version != expected {
		return 0, fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrVersionConflict)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := t.col.UpdateOne(ctx,
		bson.M{"_id": target.ID, "version": expected},
		bson.M{"$set": bson.M{"fields": rec.Project(header), "version": expected + 1}},
	)
	if err != nil {
		return 0, unavailable("update row", err)
	}
	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrVersionConflict)
	}
	return expected + 1, nil
}

func (t *table) DeleteRow(ctx context.Context, keyField, keyValue string, expected int64) error {
	target, err := t.find(ctx, keyField, keyValue)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := t.col.DeleteOne(ctx, bson.M{"_id": target.ID, "version": expected})
	if err != nil {
		return unavailable("delete row", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrVersionConflict)
	}
	return nil
}

// find returns the first row, in position order, whose keyField equals
// keyValue.
func (t *table) find(ctx context.Context, keyField, keyValue string) (*rowDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc rowDoc
	err := t.col.FindOne(ctx,
		bson.M{"fields." + keyField: keyValue},
		options.FindOne().SetSort(bson.D{{Key: "position", Value: 1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrRowNotFound)
	}
	if err != nil {
		return nil, unavailable("find row", err)
	}
	return &doc, nil
}

// maxOf returns the largest value of field across the worksheet's rows, or
// empty when there are none.
func (t *table) maxOf(ctx context.Context, field string, empty int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc rowDoc
	err := t.col.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: field, Value: -1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return empty, nil
	}
	if err != nil {
		return 0, unavailable("max "+field, err)
	}
	if field == "position" {
		return doc.Position, nil
	}
	return doc.Version, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

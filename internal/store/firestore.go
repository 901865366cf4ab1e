package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreCollection stores records as Firestore documents.
// Owned records live under users/{owner}/{name}; the unscoped collection is top level.
type FirestoreCollection[T any, P Doc[T]] struct {
	client *firestore.Client
	name   string
}

func NewFirestoreCollection[T any, P Doc[T]](client *firestore.Client, name string) *FirestoreCollection[T, P] {
	return &FirestoreCollection[T, P]{client: client, name: name}
}

func (c *FirestoreCollection[T, P]) ref(owner string) *firestore.CollectionRef {
	if owner == "" {
		return c.client.Collection(c.name)
	}
	return c.client.Collection("users").Doc(owner).Collection(c.name)
}

func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func decode[T any, P Doc[T]](snap *firestore.DocumentSnapshot, owner string) (*T, error) {
	var rec T
	if err := snap.DataTo(&rec); err != nil {
		return nil, err
	}
	P(&rec).SetID(snap.Ref.ID)
	P(&rec).SetOwnerID(owner)
	return &rec, nil
}

func (c *FirestoreCollection[T, P]) Get(ctx context.Context, owner, id string) (*T, error) {
	snap, err := c.ref(owner).Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return decode[T, P](snap, owner)
}

func (c *FirestoreCollection[T, P]) List(ctx context.Context, owner string, q Query) ([]T, error) {
	query := c.ref(owner).Query
	for _, f := range q.Where {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		rec, err := decode[T, P](snap, owner)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (c *FirestoreCollection[T, P]) Save(ctx context.Context, owner string, rec *T) error {
	p := P(rec)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	} else if snap, err := c.ref(owner).Doc(p.GetID()).Get(ctx); err == nil {
		existing, err := decode[T, P](snap, owner)
		if err != nil {
			return err
		}
		p.SetCreatedAt(P(existing).GetCreatedAt())
	} else if status.Code(err) != codes.NotFound {
		return err
	}
	p.SetOwnerID(owner)
	p.Touch(now())
	_, err := c.ref(owner).Doc(p.GetID()).Set(ctx, rec)
	return err
}

func (c *FirestoreCollection[T, P]) Update(ctx context.Context, owner, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	updates = append(updates, firestore.Update{Path: "updated_at", Value: now()})

	_, err := c.ref(owner).Doc(id).Update(ctx, updates)
	return notFound(err)
}

func (c *FirestoreCollection[T, P]) Delete(ctx context.Context, owner, id string) error {
	_, err := c.ref(owner).Doc(id).Delete(ctx, firestore.Exists)
	return notFound(err)
}

package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
)

// Store implements ports.DocumentStore on a single DynamoDB table.
//
// Layout: PK = collection name, SK = document id, document fields flattened
// as top-level attributes (so atomic ADD/DELETE work on counters and sets).
// Compound queries run as a partition Query with a filter expression and
// are ordered client-side; per-user data volumes are small, so the bounded
// in-memory sort mirrors what the app would get from the hosted store.
// Subscriptions are implemented by short-interval polling.
type Store struct {
	client       *dynamodb.Client
	tableName    string
	pollInterval time.Duration
	logger       *logrus.Logger
}

// Config holds the DynamoDB adapter settings.
type Config struct {
	TableName    string
	Region       string
	Endpoint     string // local endpoint override, empty in production
	PollInterval time.Duration
}

// NewStore creates a Store from AWS default credentials.
func NewStore(ctx context.Context, cfg Config, logger *logrus.Logger) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = 2 * time.Second
	}
	return &Store{client: client, tableName: cfg.TableName, pollInterval: poll, logger: logger}, nil
}

const (
	attrPK = "PK"
	attrSK = "SK"
)

func key(collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: collection},
		attrSK: &types.AttributeValueMemberS{Value: id},
	}
}

// Get implements DocumentStore.Get.
func (s *Store) Get(ctx context.Context, collection, id string) (*ports.Document, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(collection, id),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: get %s/%s: %w", collection, id, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return itemToDocument(out.Item), nil
}

// Create implements DocumentStore.Create.
func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Set implements DocumentStore.Set.
func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any) error {
	item, err := documentToItem(collection, id, data)
	if err != nil {
		return err
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb: put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update implements DocumentStore.Update.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	update, err := buildUpdate(ports.BatchOp{Kind: ports.BatchUpdate, Collection: collection, ID: id, Fields: fields})
	if err != nil {
		return err
	}
	if _, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       key(collection, id),
		UpdateExpression:          update.expr,
		ExpressionAttributeNames:  update.names,
		ExpressionAttributeValues: update.values,
		ConditionExpression:       aws.String("attribute_exists(" + attrPK + ")"),
	}); err != nil {
		return fmt.Errorf("dynamodb: update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete implements DocumentStore.Delete.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(collection, id),
	}); err != nil {
		return fmt.Errorf("dynamodb: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// queryScanCap bounds how many items one compound query will pull before
// ordering client-side.
const queryScanCap = 1000

// Query implements DocumentStore.Query.
func (s *Store) Query(ctx context.Context, q ports.Query) ([]ports.Document, error) {
	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key(attrPK).Equal(expression.Value(q.Collection)))
	if len(q.Filters) > 0 {
		cond, err := buildFilter(q.Filters)
		if err != nil {
			return nil, err
		}
		builder = builder.WithFilter(cond)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("dynamodb: build query expression: %w", err)
	}
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var docs []ports.Document
	var lastKey map[string]types.AttributeValue
	for {
		input.ExclusiveStartKey = lastKey
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: query %s: %w", q.Collection, err)
		}
		for _, item := range out.Items {
			docs = append(docs, *itemToDocument(item))
		}
		lastKey = out.LastEvaluatedKey
		if lastKey == nil || len(docs) >= queryScanCap {
			break
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c := compareAny(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	} else {
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	}
	if q.StartAfter != "" {
		start := 0
		for i, d := range docs {
			if d.ID == q.StartAfter {
				start = i + 1
				break
			}
		}
		docs = docs[start:]
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

// RunBatch implements DocumentStore.RunBatch with TransactWriteItems, so
// either every op commits or none do.
func (s *Store) RunBatch(ctx context.Context, ops []ports.BatchOp) error {
	items := make([]types.TransactWriteItem, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case ports.BatchSet:
			item, err := documentToItem(op.Collection, op.ID, op.Fields)
			if err != nil {
				return err
			}
			items = append(items, types.TransactWriteItem{
				Put: &types.Put{TableName: aws.String(s.tableName), Item: item},
			})
		case ports.BatchDelete:
			items = append(items, types.TransactWriteItem{
				Delete: &types.Delete{TableName: aws.String(s.tableName), Key: key(op.Collection, op.ID)},
			})
		case ports.BatchUpdate, ports.BatchIncrement, ports.BatchArrayUnion, ports.BatchArrayRemove:
			update, err := buildUpdate(op)
			if err != nil {
				return err
			}
			items = append(items, types.TransactWriteItem{
				Update: &types.Update{
					TableName:                 aws.String(s.tableName),
					Key:                       key(op.Collection, op.ID),
					UpdateExpression:          update.expr,
					ExpressionAttributeNames:  update.names,
					ExpressionAttributeValues: update.values,
					ConditionExpression:       aws.String("attribute_exists(" + attrPK + ")"),
				},
			})
		default:
			return fmt.Errorf("dynamodb: batch: unknown op kind %q", op.Kind)
		}
	}
	if _, err := s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	}); err != nil {
		return fmt.Errorf("dynamodb: transact write: %w", err)
	}
	return nil
}

// Subscribe implements DocumentStore.Subscribe by polling the query and
// delivering a snapshot whenever the result set changes.
func (s *Store) Subscribe(ctx context.Context, q ports.Query, fn ports.SnapshotFunc) (ports.CancelListener, error) {
	docs, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	fn(docs)
	last := fingerprint(docs)

	pollCtx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				docs, err := s.Query(pollCtx, q)
				if err != nil {
					if pollCtx.Err() == nil {
						s.logger.WithError(err).WithField("collection", q.Collection).Warn("subscription poll failed")
					}
					continue
				}
				if fp := fingerprint(docs); fp != last {
					last = fp
					fn(docs)
				}
			}
		}
	}()
	return func() { cancel() }, nil
}

func fingerprint(docs []ports.Document) string {
	b, err := json.Marshal(docs)
	if err != nil {
		return fmt.Sprintf("%d", len(docs))
	}
	return string(b)
}

func compareAny(a, b any) int {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

var _ ports.DocumentStore = (*Store)(nil)

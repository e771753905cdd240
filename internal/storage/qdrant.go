package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/bull/benchgen/internal/generator"
)

// DefaultCollection is the Qdrant collection benchmark documents are published to.
const DefaultCollection = "synthetic-50k"

// VectorName is the named vector the downstream embedder fills in.
const VectorName = "content"

// DefaultVectorDimension matches text-embedding-3-small.
const DefaultVectorDimension = 1536

// upsertBatchSize bounds points per upsert request.
const upsertBatchSize = 100

// pointNamespace scopes document point ids so reruns overwrite the same points.
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("benchgen/documents"))

// QdrantStorage publishes generated documents to Qdrant as payload-only
// parent points. Vectors are left for the retrieval system under test.
type QdrantStorage struct {
	client     *qdrant.Client
	host       string
	port       int
	collection string
	dimension  uint64
}

// NewQdrantStorage creates a new Qdrant client with health validation.
// It performs health check with retry on startup and fails fast if Qdrant is unreachable.
func NewQdrantStorage(host string, port int, collection string) (*QdrantStorage, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	// Create Qdrant client using gRPC
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	storage := &QdrantStorage{
		client:     client,
		host:       host,
		port:       port,
		collection: collection,
		dimension:  DefaultVectorDimension,
	}

	if err := storage.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrQdrantUnreachable, err)
	}

	return storage, nil
}

// newRetryBackOff returns the retry policy shared by health checks and upserts:
// initial interval 500ms, max interval 10s, max elapsed 30s.
func newRetryBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return b
}

func (s *QdrantStorage) healthCheckWithRetry(ctx context.Context) error {
	return backoff.Retry(func() error {
		return s.Health(ctx)
	}, backoff.WithContext(newRetryBackOff(), ctx))
}

// Health performs a single health check against Qdrant.
func (s *QdrantStorage) Health(ctx context.Context) error {
	result, err := s.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}

	return nil
}

// Collection returns the target collection name.
func (s *QdrantStorage) Collection() string {
	return s.collection
}

// EnsureCollection creates the collection with a named cosine vector and
// keyword payload indexes if it does not exist yet. Idempotent.
func (s *QdrantStorage) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
			VectorName: {
				Size:     s.dimension,
				Distance: qdrant.Distance_Cosine,
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if err := s.createPayloadIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create payload indexes: %w", err)
	}
	return nil
}

// createPayloadIndexes indexes every field queries filter on.
func (s *QdrantStorage) createPayloadIndexes(ctx context.Context) error {
	fields := []string{
		"type",
		"doc_id",
		"filename",
		"topic",
		"doc_type",
		"department",
	}

	for _, field := range fields {
		_, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: s.collection,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		})
		if err != nil {
			return fmt.Errorf("failed to create index for field %s: %w", field, err)
		}
	}
	return nil
}

// ClearCollection drops and recreates the collection.
func (s *QdrantStorage) ClearCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}
	return s.EnsureCollection(ctx)
}

// Close closes the Qdrant client connection.
func (s *QdrantStorage) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *QdrantStorage) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	operation := func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.collection,
			Points:         points,
		})
		return err
	}
	return backoff.Retry(operation, backoff.WithContext(newRetryBackOff(), ctx))
}

// PointID maps a document id to its stable Qdrant point id.
func PointID(docID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(docID)).String()
}

// documentPayload builds the payload stored for a document.
func documentPayload(doc *generator.Document) map[string]any {
	return map[string]any{
		"type":       "parent",
		"doc_id":     doc.ID,
		"filename":   doc.Filename(),
		"title":      doc.Title,
		"topic":      doc.Topic,
		"doc_type":   doc.DocType,
		"department": doc.Department,
		"content":    doc.Content,
	}
}

// UpsertDocuments stores documents as parent points without vectors,
// batched in groups of 100.
func (s *QdrantStorage) UpsertDocuments(ctx context.Context, docs []*generator.Document) error {
	for i := 0; i < len(docs); i += upsertBatchSize {
		end := min(i+upsertBatchSize, len(docs))

		points := make([]*qdrant.PointStruct, 0, end-i)
		for _, doc := range docs[i:end] {
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(PointID(doc.ID)),
				Vectors: qdrant.NewVectorsMap(map[string]*qdrant.Vector{}),
				Payload: qdrant.NewValueMap(documentPayload(doc)),
			})
		}

		if err := s.upsertWithRetry(ctx, points); err != nil {
			return fmt.Errorf("failed to upsert batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// GetDocument retrieves a published document by its benchmark id.
// Returns ErrDocumentNotFound if it doesn't exist.
func (s *QdrantStorage) GetDocument(ctx context.Context, docID string) (*generator.Document, error) {
	result, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collection,
		Ids:            []*qdrant.PointId{qdrant.NewIDUUID(PointID(docID))},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if len(result) == 0 {
		return nil, ErrDocumentNotFound
	}

	payload := result[0].Payload
	if typeVal, ok := payload["type"]; !ok || typeVal.GetStringValue() != "parent" {
		return nil, ErrDocumentNotFound
	}

	return &generator.Document{
		ID:         payload["doc_id"].GetStringValue(),
		Title:      payload["title"].GetStringValue(),
		Topic:      payload["topic"].GetStringValue(),
		DocType:    payload["doc_type"].GetStringValue(),
		Department: payload["department"].GetStringValue(),
		Content:    payload["content"].GetStringValue(),
	}, nil
}

// CountDocuments returns the number of parent points in the collection.
func (s *QdrantStorage) CountDocuments(ctx context.Context) (uint64, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("type", "parent")},
		},
		Exact: qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

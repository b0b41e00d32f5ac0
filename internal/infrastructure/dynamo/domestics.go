package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tarfea/dashboard-api/internal/domain"
)

// DomesticRepo provides typed DynamoDB operations for the domestics table.
type DomesticRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDomesticRepo(client *dynamodb.Client, tableName string) *DomesticRepo {
	return &DomesticRepo{client: client, tableName: tableName}
}

func (r *DomesticRepo) Put(ctx context.Context, d *domain.Domestic) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal domestic: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DomesticRepo) Get(ctx context.Context, domesticID string) (*domain.Domestic, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("domestic_id", domesticID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("domestic: %w", domain.ErrNotFound)
	}
	var d domain.Domestic
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByOwner queries the owner_user_id GSI; results are unordered, callers sort.
func (r *DomesticRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Domestic, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("owner_user_id-index"),
		KeyConditionExpression: aws.String("owner_user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: ownerUserID},
		},
	})
	if err != nil {
		return nil, err
	}
	var domestics []domain.Domestic
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &domestics); err != nil {
		return nil, err
	}
	return domestics, nil
}

func (r *DomesticRepo) Update(ctx context.Context, domesticID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC()
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("domestic_id", domesticID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *DomesticRepo) Delete(ctx context.Context, domesticID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("domestic_id", domesticID),
	})
	return err
}

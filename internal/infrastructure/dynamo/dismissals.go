package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tarfea/dashboard-api/internal/domain"
)

// DismissalRepo provides typed DynamoDB operations for the dismissals table.
// The table keys on (owner_user_id, dismiss_key) where dismiss_key is
// companyID#field, so dismissals are unique per user and pair by construction.
type DismissalRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDismissalRepo(client *dynamodb.Client, tableName string) *DismissalRepo {
	return &DismissalRepo{client: client, tableName: tableName}
}

// DismissKey builds the range-key value for a (company, field) pair.
func DismissKey(companyID, field string) string {
	return companyID + "#" + field
}

// PutIfAbsent inserts the dismissal unless it already exists. Returns
// created=false (and no error) when the pair was already dismissed.
func (r *DismissalRepo) PutIfAbsent(ctx context.Context, d *domain.Dismissal) (bool, error) {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return false, fmt.Errorf("marshal dismissal: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(dismiss_key)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByOwner returns all dismissals recorded by one user.
func (r *DismissalRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Dismissal, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("owner_user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: ownerUserID},
		},
	})
	if err != nil {
		return nil, err
	}
	var dismissals []domain.Dismissal
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &dismissals); err != nil {
		return nil, err
	}
	return dismissals, nil
}

// Delete removes one dismissal; deleting a non-existent row is a no-op.
func (r *DismissalRepo) Delete(ctx context.Context, ownerUserID, companyID, field string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("owner_user_id", ownerUserID, "dismiss_key", DismissKey(companyID, field)),
	})
	return err
}

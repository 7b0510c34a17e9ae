package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/example/storefront/internal/domain/cart"
)

// DynamoStorage stores carts in DynamoDB with cart_id as the partition key.
type DynamoStorage struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoCart represents the DynamoDB item structure
type dynamoCart struct {
	CartID    string `dynamodbav:"cart_id"`
	Items     string `dynamodbav:"items"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func NewDynamoStorage(client *dynamodb.Client, tableName string) *DynamoStorage {
	return &DynamoStorage{client: client, tableName: tableName}
}

func (d *DynamoStorage) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"cart_id": &types.AttributeValueMemberS{Value: cartID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var dc dynamoCart
	if err := attributevalue.UnmarshalMap(result.Item, &dc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart item: %w", err)
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(dc.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to parse stored cart: %w", err)
	}
	return items, nil
}

func (d *DynamoStorage) Save(ctx context.Context, cartID string, items []cart.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	av, err := attributevalue.MarshalMap(dynamoCart{
		CartID:    cartID,
		Items:     string(data),
		UpdatedAt: time.Now().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cart record: %w", err)
	}

	// Overwrite existing cart (no condition)
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put cart: %w", err)
	}
	return nil
}

func (d *DynamoStorage) Delete(ctx context.Context, cartID string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"cart_id": &types.AttributeValueMemberS{Value: cartID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

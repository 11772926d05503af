package dynamodb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
)

// documentToItem flattens document fields into top-level attributes next to
// the PK/SK pair. StringSet fields become native string sets so ADD/DELETE
// work on them; empty sets are omitted (DynamoDB forbids empty sets).
func documentToItem(collection, id string, data map[string]any) (map[string]types.AttributeValue, error) {
	item := key(collection, id)
	for k, v := range data {
		if k == attrPK || k == attrSK {
			return nil, fmt.Errorf("dynamodb: field name %q is reserved", k)
		}
		av, err := marshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: marshal field %q: %w", k, err)
		}
		if av == nil {
			continue
		}
		item[k] = av
	}
	return item, nil
}

// marshalValue returns nil (omit) for empty string sets.
func marshalValue(v any) (types.AttributeValue, error) {
	if set, ok := v.(ports.StringSet); ok {
		if len(set) == 0 {
			return nil, nil
		}
		return &types.AttributeValueMemberSS{Value: set}, nil
	}
	return attributevalue.Marshal(v)
}

func itemToDocument(item map[string]types.AttributeValue) *ports.Document {
	doc := &ports.Document{Data: make(map[string]any, len(item))}
	for k, av := range item {
		switch k {
		case attrPK:
		case attrSK:
			if s, ok := av.(*types.AttributeValueMemberS); ok {
				doc.ID = s.Value
			}
		default:
			doc.Data[k] = unmarshalValue(av)
		}
	}
	return doc
}

func unmarshalValue(av types.AttributeValue) any {
	switch t := av.(type) {
	case *types.AttributeValueMemberS:
		return t.Value
	case *types.AttributeValueMemberN:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return t.Value
		}
		return f
	case *types.AttributeValueMemberBOOL:
		return t.Value
	case *types.AttributeValueMemberSS:
		return ports.StringSet(t.Value)
	case *types.AttributeValueMemberL:
		out := make([]any, len(t.Value))
		for i, el := range t.Value {
			out[i] = unmarshalValue(el)
		}
		return out
	case *types.AttributeValueMemberM:
		out := make(map[string]any, len(t.Value))
		for k, el := range t.Value {
			out[k] = unmarshalValue(el)
		}
		return out
	case *types.AttributeValueMemberNULL:
		return nil
	default:
		return nil
	}
}

// buildFilter translates the port's predicate list into a DynamoDB
// condition expression.
func buildFilter(filters []ports.Filter) (expression.ConditionBuilder, error) {
	var cond expression.ConditionBuilder
	for i, f := range filters {
		var c expression.ConditionBuilder
		switch f.Op {
		case ports.OpEqual:
			c = expression.Name(f.Field).Equal(expression.Value(f.Value))
		case ports.OpLess:
			c = expression.Name(f.Field).LessThan(expression.Value(f.Value))
		case ports.OpLessEqual:
			c = expression.Name(f.Field).LessThanEqual(expression.Value(f.Value))
		case ports.OpGreater:
			c = expression.Name(f.Field).GreaterThan(expression.Value(f.Value))
		case ports.OpGreaterEqual:
			c = expression.Name(f.Field).GreaterThanEqual(expression.Value(f.Value))
		case ports.OpArrayContains:
			c = expression.Name(f.Field).Contains(fmt.Sprintf("%v", f.Value))
		case ports.OpIn:
			candidates := toOperands(f.Value)
			if len(candidates) == 0 {
				return cond, fmt.Errorf("dynamodb: 'in' filter on %q needs at least one candidate", f.Field)
			}
			c = expression.Name(f.Field).In(candidates[0], candidates[1:]...)
		default:
			return cond, fmt.Errorf("dynamodb: unsupported filter op %q", f.Op)
		}
		if i == 0 {
			cond = c
		} else {
			cond = cond.And(c)
		}
	}
	return cond, nil
}

func toOperands(v any) []expression.OperandBuilder {
	switch s := v.(type) {
	case []string:
		out := make([]expression.OperandBuilder, len(s))
		for i, el := range s {
			out[i] = expression.Value(el)
		}
		return out
	case ports.StringSet:
		out := make([]expression.OperandBuilder, len(s))
		for i, el := range s {
			out[i] = expression.Value(el)
		}
		return out
	case []any:
		out := make([]expression.OperandBuilder, len(s))
		for i, el := range s {
			out[i] = expression.Value(el)
		}
		return out
	default:
		return []expression.OperandBuilder{expression.Value(v)}
	}
}

type updateParts struct {
	expr   *string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildUpdate hand-assembles the update expression: SET for field patches,
// ADD for numeric deltas and set unions, DELETE for set removals. ADD and
// DELETE only work on top-level attributes, which is why documents are
// stored flattened.
func buildUpdate(op ports.BatchOp) (updateParts, error) {
	parts := updateParts{
		names:  make(map[string]string),
		values: make(map[string]types.AttributeValue),
	}
	var keyword string
	var fragments []string
	i := 0
	for field, v := range op.Fields {
		nameRef := fmt.Sprintf("#f%d", i)
		valueRef := fmt.Sprintf(":v%d", i)
		parts.names[nameRef] = field
		i++

		switch op.Kind {
		case ports.BatchUpdate:
			av, err := marshalValue(v)
			if err != nil {
				return parts, fmt.Errorf("dynamodb: marshal update field %q: %w", field, err)
			}
			if av == nil {
				av = &types.AttributeValueMemberNULL{Value: true}
			}
			parts.values[valueRef] = av
			keyword = "SET"
			fragments = append(fragments, fmt.Sprintf("%s = %s", nameRef, valueRef))
		case ports.BatchIncrement:
			parts.values[valueRef] = &types.AttributeValueMemberN{
				Value: strconv.FormatFloat(toNumber(v), 'f', -1, 64),
			}
			keyword = "ADD"
			fragments = append(fragments, fmt.Sprintf("%s %s", nameRef, valueRef))
		case ports.BatchArrayUnion:
			set := toStringSlice(v)
			if len(set) == 0 {
				return parts, fmt.Errorf("dynamodb: empty set union on %q", field)
			}
			parts.values[valueRef] = &types.AttributeValueMemberSS{Value: set}
			keyword = "ADD"
			fragments = append(fragments, fmt.Sprintf("%s %s", nameRef, valueRef))
		case ports.BatchArrayRemove:
			set := toStringSlice(v)
			if len(set) == 0 {
				return parts, fmt.Errorf("dynamodb: empty set removal on %q", field)
			}
			parts.values[valueRef] = &types.AttributeValueMemberSS{Value: set}
			keyword = "DELETE"
			fragments = append(fragments, fmt.Sprintf("%s %s", nameRef, valueRef))
		default:
			return parts, fmt.Errorf("dynamodb: buildUpdate: unsupported op kind %q", op.Kind)
		}
	}
	if len(fragments) == 0 {
		return parts, fmt.Errorf("dynamodb: %s on %s/%s carries no fields", op.Kind, op.Collection, op.ID)
	}
	parts.expr = aws.String(keyword + " " + strings.Join(fragments, ", "))
	return parts, nil
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func toStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case ports.StringSet:
		return s
	case string:
		return []string{s}
	default:
		return nil
	}
}

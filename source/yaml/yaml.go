// Package yaml builds document values from YAML text using yaml.v3. Mapping
// key order is preserved via yaml.Node, so the resulting tree is a faithful
// oolong.Document (bson.D).
package yaml

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	y "gopkg.in/yaml.v3"

	oolong "github.com/WojciechMazur/oolong"
	"github.com/WojciechMazur/oolong/i18n"
)

// Bytes decodes a single YAML document from b into a document value.
func Bytes(b []byte) (oolong.Value, error) {
	var root y.Node
	if err := y.Unmarshal(b, &root); err != nil {
		return nil, parseIssue(err)
	}
	v, err := fromNode(&root)
	if err != nil {
		return nil, parseIssue(err)
	}
	return v, nil
}

func fromNode(n *y.Node) (oolong.Value, error) {
	if n.Kind == 0 {
		// Empty input leaves the root node unset.
		return nil, nil
	}
	switch n.Kind {
	case y.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case y.MappingNode:
		doc := bson.D{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			doc = append(doc, bson.E{Key: key, Value: val})
		}
		return doc, nil
	case y.SequenceNode:
		arr := bson.A{}
		for _, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case y.ScalarNode:
		return fromScalar(n)
	case y.AliasNode:
		return fromNode(n.Alias)
	}
	return nil, fmt.Errorf("unsupported yaml node kind %v", n.Kind)
}

func fromScalar(n *y.Node) (oolong.Value, error) {
	switch n.Tag {
	case "!!null", "":
		if n.Tag == "" && n.Value != "" {
			return n.Value, nil
		}
		return nil, nil
	case "!!str":
		return n.Value, nil
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case "!!bool":
		v, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	// Unrecognized tags (timestamps, custom tags) carry their raw string.
	return n.Value, nil
}

func parseIssue(err error) oolong.Issues {
	return oolong.Issues{oolong.Issue{Path: "/", Code: oolong.CodeParseError, Message: i18n.T(oolong.CodeParseError, nil), Cause: err}}
}

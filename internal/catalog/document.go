package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tripcart/internal/models"
)

var (
	// ErrInvalidDocument 目录文档结构不合法
	ErrInvalidDocument = errors.New("invalid catalog document")
)

// Decode 解析并校验目录文档
func Decode(r io.Reader) (models.CatalogDocument, error) {
	var doc models.CatalogDocument
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return models.CatalogDocument{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := Validate(doc); err != nil {
		return models.CatalogDocument{}, err
	}
	return doc, nil
}

// Validate 校验商品 ID 唯一且价格非负
func Validate(doc models.CatalogDocument) error {
	seen := make(map[string]struct{}, len(doc.Products))
	for i, product := range doc.Products {
		id := strings.TrimSpace(product.ID)
		if id == "" {
			return fmt.Errorf("%w: product[%d] id is empty", ErrInvalidDocument, i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate product id %s", ErrInvalidDocument, id)
		}
		seen[id] = struct{}{}
		if product.Price.IsNegative() {
			return fmt.Errorf("%w: product %s has negative price", ErrInvalidDocument, id)
		}
	}
	return nil
}

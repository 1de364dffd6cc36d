//go:build unit || e2e

package testutil

// a helper function for dynamically modifying map fields in tests
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// ProductField mutates one entry of the "products" array; a nil value removes the key.
func ProductField(index int, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		products, ok := m["products"].([]any)
		if !ok || index >= len(products) {
			return
		}
		product, ok := products[index].(map[string]any)
		if !ok {
			return
		}
		Field(key, value)(product)
	}
}

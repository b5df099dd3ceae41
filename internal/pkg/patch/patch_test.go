//go:build unit

package patch_test

import (
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/pkg/patch"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	limit := 3
	assert.Equal(t, 3, patch.Coalesce(&limit, 1))
	assert.Equal(t, 1, patch.Coalesce[int](nil, 1))
}

func TestText(t *testing.T) {
	remark := "  leave at the door \n"
	assert.Equal(t, "leave at the door", patch.Text(&remark))
	assert.Equal(t, "", patch.Text(nil))
}

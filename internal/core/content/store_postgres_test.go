// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemColumns_FollowSchema(t *testing.T) {
	columns := strings.Split(itemColumns(), ", ")
	assert.Len(t, columns, len(cols.Columns()))
	assert.Equal(t, "i."+cols.ID, columns[0])
	assert.Equal(t, "i."+cols.Price+"::text", columns[7])
	assert.Equal(t, "i."+cols.UpdatedAt, columns[9])

	assert.Contains(t, selectItems, itemColumns())
}

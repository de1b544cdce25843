package repository

import "gorm.io/gorm"

// paginate applies LIMIT/OFFSET only when a positive limit is given; gorm
// renders Limit(0) as LIMIT 0.
func paginate(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		return query
	}
	return query.Limit(limit).Offset(offset)
}

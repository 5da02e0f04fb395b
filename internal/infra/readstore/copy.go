package readstore

import (
	"time"

	"bookride-api/internal/pkg/ptr"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinzhu/copier"
)

// copyOption maps nullable pgtype columns onto pointer view fields and
// normalises timestamps to UTC.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: pgtype.Timestamptz{},
			DstType: (*time.Time)(nil),
			Fn: func(src any) (any, error) {
				return ptr.TimeFromPgtype(src.(pgtype.Timestamptz)), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: time.Time{},
			Fn: func(src any) (any, error) {
				return src.(time.Time).UTC(), nil
			},
		},
	},
}

func toView[V any](row any) (*V, error) {
	var view V
	if err := copier.CopyWithOption(&view, row, copyOption); err != nil {
		return nil, err
	}
	return &view, nil
}

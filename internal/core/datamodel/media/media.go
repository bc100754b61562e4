package media

import "time"

type MediaAsset struct {
	ID          string    `json:"id" gorm:"column:id;primaryKey" bson:"_id"`
	Kind        string    `json:"kind" gorm:"column:kind;not null;index" bson:"kind"`
	Title       string    `json:"title" gorm:"column:title" bson:"title"`
	FileName    string    `json:"file_name" gorm:"column:file_name;not null" bson:"fileName"`
	ContentType string    `json:"content_type" gorm:"column:content_type;not null" bson:"contentType"`
	Size        int64     `json:"size" gorm:"column:size;not null" bson:"size"`
	ObjectKey   string    `json:"object_key" gorm:"column:object_key;not null;uniqueIndex" bson:"objectKey"`
	URL         string    `json:"url" gorm:"column:url;not null" bson:"url"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"column:uploaded_at;not null;index" bson:"uploadedAt"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

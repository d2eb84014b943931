package model

import "time"

type Answer struct {
	UUID        string    `db:"uuid" json:"uuid"`
	PostUUID    string    `db:"post_uuid" json:"post_uuid"`
	WriterUUID  string    `db:"writer_uuid" json:"writer_uuid"`
	WriterEmail string    `db:"writer_email" json:"writer_email"`
	Content     string    `db:"content" json:"content"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

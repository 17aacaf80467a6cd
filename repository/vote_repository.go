package repository

import "context"

// VoteRepository, öneri oyları için interface.
//
// Favorilerin aksine duplicate oy SESSİZCE YUTULMAZ: aynı kullanıcının
// aynı öneriye ikinci oyu pkg.ErrAlreadyVoted ile açıkça reddedilir.
// İki davranış bilinçli olarak farklıdır — favori "işaretli kalsın"
// niyetidir, oy ise sayılan bir eylemdir.
type VoteRepository interface {
	Create(ctx context.Context, suggestionID, userID string) error
	Delete(ctx context.Context, suggestionID, userID string) error
	Exists(ctx context.Context, suggestionID, userID string) (bool, error)
}

package logic

import (
	"ripple/dal"
	"ripple/dto"
	"ripple/shared"
)

// authorView tolerates a missing account: the id is kept and the rest left blank.
func authorView(idb *shared.IdBuilder, id string, acct *dal.Account) dto.AuthorView {
	if acct == nil {
		return dto.AuthorView{Id: id}
	}
	return dto.AuthorView{
		Id:          acct.Id,
		Handle:      acct.Handle,
		DisplayName: acct.DisplayName,
		AvatarUrl:   acct.AvatarUrl,
		ProfileUrl:  idb.ProfileUrl(acct.Handle),
	}
}

func rippleView(idb *shared.IdBuilder, ripple *dal.Ripple, author *dal.Account) dto.RippleView {
	return dto.RippleView{
		Id:        ripple.Id,
		DropId:    ripple.DropId,
		Author:    authorView(idb, ripple.AuthorId, author),
		Body:      ripple.Body,
		CreatedAt: ripple.CreatedAt,
	}
}

func DropToDto(drop *dal.Drop) *dto.Drop {
	return &dto.Drop{
		Id:        drop.Id,
		AuthorId:  drop.AuthorId,
		Body:      drop.Body,
		CreatedAt: drop.CreatedAt,
		UpdatedAt: drop.UpdatedAt,
		Slot:      drop.Slot,
	}
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			res = append(res, id)
		}
	}
	return res
}

func AccountToDto(idb *shared.IdBuilder, acct *dal.Account) dto.AuthorView {
	return authorView(idb, acct.Id, acct)
}

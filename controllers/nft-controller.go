package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xrpscan/explorer/codec"
)

type NFTokenResponse struct {
	codec.NFTokenID
	FlagNames          []string `json:"flag_names"`
	TransferFeePercent string   `json:"transfer_fee_percent"`
	IssuerAddress      string   `json:"issuer_address"`
}

// GetNFToken decodes the fields packed into an NFTokenID
// GET /api/v1/nft/:id
func (ctl *Controller) GetNFToken(c echo.Context) error {
	token, err := codec.DecodeNFTokenID(c.Param("id"))
	if err != nil {
		return failure(c, http.StatusBadRequest, err.Error())
	}
	return success(c, "NFTokenID decoded successfully", NFTokenResponse{
		NFTokenID:          token,
		FlagNames:          token.FlagNames(),
		TransferFeePercent: token.TransferFeePercent(),
		IssuerAddress:      token.IssuerAddress(),
	})
}

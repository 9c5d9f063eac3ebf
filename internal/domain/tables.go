package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// POS
	&ShopProfile{},
	&Product{},
	&Customer{},
	&Bill{},
	&BillItem{},
}

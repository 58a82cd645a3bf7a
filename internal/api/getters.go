package api

// GetBillID getters are nil-safe, mirroring generated message accessors.

func (x *GetBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *DeleteBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *UpdateBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *AddDinerRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *RemoveDinerRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *RenameDinerRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *AddItemRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *RemoveItemRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *AssignItemRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *UnassignItemRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *SplitItemRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *SetItemSplitRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *CalculateTotalsRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

func (x *ShareBillRequest) GetBillID() string {
	if x == nil {
		return ""
	}
	return x.BillID
}

package client

import "github.com/m04kA/SMC-TableService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
